package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/internal/usecases/portfolio"
	"github.com/rovema/bi-comercial-api/pkg/apiErrors"
	"github.com/rovema/bi-comercial-api/pkg/log"
	"github.com/rovema/bi-comercial-api/pkg/middleware"
)

const defaultOrphanLimit = 100

type ReassignOrphanRequest struct {
	SaleID        string  `json:"sale_id"`
	CNPJ          string  `json:"cnpj"`
	ClientName    string  `json:"client_name"`
	ConsultantUID string  `json:"consultant_uid"`
	ManagerUID    *string `json:"manager_uid"`
}

// ListOrphanSales retorna as vendas sem consultor nem gestor atribuídos
func ListOrphanSales(service portfolio.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		limit := uint64(defaultOrphanLimit)
		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			parsed, err := strconv.ParseUint(limitParam, 10, 64)
			if err != nil || parsed == 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limite inválido", nil)
				return
			}
			limit = parsed
		}

		orphans, err := service.ListOrphans(limit)
		if err != nil {
			logger.WithError(err).Error("orphans: erro ao buscar vendas órfãs")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar vendas órfãs", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(orphans); err != nil {
			logger.WithError(err).Error("orphans: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// ReassignOrphanSale atribui uma venda órfã a um consultor e grava o CNPJ
// na carteira, na mesma transação
func ReassignOrphanSale(service portfolio.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req ReassignOrphanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.SaleID == "" || req.CNPJ == "" || req.ConsultantUID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Venda, CNPJ e consultor são obrigatórios", nil)
			return
		}

		entry := &domain.PortfolioEntry{
			CNPJ:          req.CNPJ,
			ClientName:    req.ClientName,
			ConsultantUID: req.ConsultantUID,
			ManagerUID:    req.ManagerUID,
		}

		err := service.ReassignOrphan(r.Context(), req.SaleID, entry, userClaims.UserEmail)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"sale_id": req.SaleID,
			}).Error("orphans: erro ao reatribuir venda")

			errorMsg := err.Error()
			switch {
			case strings.Contains(errorMsg, "CNPJ inválido"):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, errorMsg, nil)

			case strings.Contains(errorMsg, "não encontrada"):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Venda não encontrada", nil)

			default:
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao reatribuir venda", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"sale_id":        req.SaleID,
			"consultant_uid": req.ConsultantUID,
		}).Info("orphans: venda reatribuída")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	})
}
