package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/internal/usecases/ingesting"
	"github.com/rovema/bi-comercial-api/pkg/apiErrors"
	"github.com/rovema/bi-comercial-api/pkg/log"
	"github.com/rovema/bi-comercial-api/pkg/middleware"
)

// Limite do corpo do upload; exportações mensais ficam bem abaixo disso
const maxUploadBytes = 32 << 20

// IngestSales recebe a exportação CSV de uma origem via multipart e dispara
// a carga: validação do contrato de colunas, normalização, atribuição pela
// carteira e gravação em lotes
func IngestSales(service ingesting.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		source, ok := domain.ParseSalesSource(httprouter.ParamsFromContext(r.Context()).ByName("source"))
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Origem de dados desconhecida", nil)
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			logger.WithError(err).Error("ingest: erro ao ler formulário multipart")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Envie o arquivo no campo 'file' do formulário", nil)
			return
		}

		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Arquivo não fornecido", nil)
			return
		}
		defer file.Close()

		logger.WithFields(log.Fields{
			"source":    source,
			"file_name": fileHeader.Filename,
			"file_size": fileHeader.Size,
			"user":      userClaims.UserEmail,
		}).Info("ingest: iniciando carga por arquivo")

		summary, err := service.IngestCSV(r.Context(), source, file, userClaims.UserEmail)
		if err != nil {
			writePipelineError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"source":    summary.Source,
			"processed": summary.Processed,
			"written":   summary.Written,
			"orphans":   summary.Orphans,
			"dropped":   summary.Dropped,
		}).Info("ingest: carga concluída")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithError(err).Error("ingest: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// SyncELIQ dispara a carga das recargas ELIQ por período via API do parceiro
func SyncELIQ(service ingesting.Service) http.Handler {
	return syncHandler("eliq", service.SyncELIQ)
}

// SyncASTO dispara a carga das apurações ASTO por período via API do
// parceiro. A integração fica atrás de flag de configuração.
func SyncASTO(service ingesting.Service) http.Handler {
	return syncHandler("asto", service.SyncASTO)
}

type syncFunc func(ctx context.Context, startDate, endDate time.Time, userEmail string) (*ingesting.Summary, error)

func syncHandler(name string, sync syncFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		startDate, endDate, err := parsePeriod(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"integration": name,
			"start_date":  startDate.Format(time.DateOnly),
			"end_date":    endDate.Format(time.DateOnly),
			"user":        userClaims.UserEmail,
		}).Info("sync: iniciando carga via API do parceiro")

		summary, err := sync(r.Context(), startDate, endDate, userClaims.UserEmail)
		if err != nil {
			writePipelineError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithError(err).Error("sync: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// writePipelineError converte o erro do pipeline de ingestão na resposta
// HTTP correspondente
func writePipelineError(w http.ResponseWriter, logger log.Logger, err error) {
	var pipelineErr *ingesting.PipelineError
	if errors.As(err, &pipelineErr) {
		logger.WithError(err).WithFields(log.Fields{
			"source": pipelineErr.Source,
			"code":   pipelineErr.Code,
		}).Error("ingest: carga abortada")

		apiErrors.WriteError(w, pipelineErr.Code, pipelineErr.Error(), map[string]any{
			"source": pipelineErr.Source,
		})
		return
	}

	logger.WithError(err).Error("ingest: erro inesperado na carga")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar carga", nil)
}
