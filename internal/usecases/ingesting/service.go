package ingesting

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rovema/bi-comercial-api/infrastructure/integrator/asto/astoclient"
	"github.com/rovema/bi-comercial-api/infrastructure/integrator/eliq/eliqclient"
	"github.com/rovema/bi-comercial-api/infrastructure/repository"
	"github.com/rovema/bi-comercial-api/internal/config"
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/internal/usecases/portfolio"
	"github.com/rovema/bi-comercial-api/pkg/apiErrors"
	"github.com/rovema/bi-comercial-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Summary é o resumo devolvido ao operador ao fim de uma carga
type Summary struct {
	Source    domain.SalesSource `json:"source"`
	Processed int                `json:"processed"`
	Written   int                `json:"written"`
	Orphans   int                `json:"orphans"`
	Dropped   int                `json:"dropped"`
}

type Service interface {
	IngestCSV(ctx context.Context, source domain.SalesSource, file io.Reader, userEmail string) (*Summary, error)
	SyncELIQ(ctx context.Context, startDate, endDate time.Time, userEmail string) (*Summary, error)
	SyncASTO(ctx context.Context, startDate, endDate time.Time, userEmail string) (*Summary, error)
}

type service struct {
	cfg              *config.Config
	portfolioService portfolio.Service
	salesRecordRepo  repository.SalesRecordRepository
	auditLogRepo     repository.AuditLogRepository
	eliqClient       eliqclient.Client
	astoClient       astoclient.Client
	batchSize        int
	flushDelay       time.Duration
}

func NewService(
	cfg *config.Config,
	portfolioService portfolio.Service,
	salesRecordRepo repository.SalesRecordRepository,
	auditLogRepo repository.AuditLogRepository,
	eliqClient eliqclient.Client,
	astoClient astoclient.Client,
) Service {
	return &service{
		cfg:              cfg,
		portfolioService: portfolioService,
		salesRecordRepo:  salesRecordRepo,
		auditLogRepo:     auditLogRepo,
		eliqClient:       eliqClient,
		astoClient:       astoClient,
		batchSize:        cfg.Ingest.BatchSize,
		flushDelay:       time.Duration(cfg.Ingest.FlushDelaySeconds) * time.Second,
	}
}

// IngestCSV processa a exportação CSV de uma origem: valida o contrato de
// colunas, extrai e normaliza as linhas, atribui cada venda pela carteira e
// grava em lotes idempotentes.
func (s *service) IngestCSV(ctx context.Context, source domain.SalesSource, file io.Reader, userEmail string) (*Summary, error) {
	header, rows, err := readCSV(file, string(source))
	if err != nil {
		return nil, err
	}

	var records []*domain.SalesRecord
	var dropped int

	switch source {
	case domain.SourceBionio:
		records, dropped, err = extractBionio(header, rows)
	case domain.SourceRovemaPay:
		records, dropped, err = extractRovemaPay(header, rows)
	default:
		return nil, NewPipelineError(ErrSourceNotCSV, apiErrors.ErrInvalidRequest, string(source), "origem sem carga por arquivo")
	}
	if err != nil {
		return nil, err
	}

	summary, err := s.persist(ctx, source, records, len(rows), dropped)
	if err != nil {
		return nil, err
	}

	s.audit(userEmail, summary)

	return summary, nil
}

// SyncELIQ busca as recargas do período na API da ELIQ e as carrega
func (s *service) SyncELIQ(ctx context.Context, startDate, endDate time.Time, userEmail string) (*Summary, error) {
	response, err := s.eliqClient.GetRecharges(eliqclient.RechargeConsultationParams{
		StartDate: startDate.Format(time.DateOnly),
		EndDate:   endDate.Format(time.DateOnly),
	})
	if err != nil {
		return nil, NewPipelineError(ErrIntegrationFailure, apiErrors.ErrPartnerIntegration, string(domain.SourceELIQ), err.Error())
	}

	records, dropped := extractELIQ(response)

	summary, err := s.persist(ctx, domain.SourceELIQ, records, len(response), dropped)
	if err != nil {
		return nil, err
	}

	s.audit(userEmail, summary)

	return summary, nil
}

// SyncASTO busca as apurações do período na API da ASTO. A integração fica
// atrás de flag porque o retorno do parceiro não traz CNPJ e toda venda
// entraria órfã.
func (s *service) SyncASTO(ctx context.Context, startDate, endDate time.Time, userEmail string) (*Summary, error) {
	if !s.cfg.ASTO.SyncEnabled {
		logrus.Warn("Sincronização ASTO desabilitada: o retorno do parceiro não traz CNPJ do cliente")
		return nil, NewPipelineError(ErrIntegrationDisabled, apiErrors.ErrPartnerIntegration, string(domain.SourceASTO), "habilite ASTO_SYNC_ENABLED após correção do contrato de dados")
	}

	response, err := s.astoClient.GetSettlements(astoclient.SettlementConsultationParams{
		StartDate: startDate.Format(time.DateOnly),
		EndDate:   endDate.Format(time.DateOnly),
	})
	if err != nil {
		return nil, NewPipelineError(ErrIntegrationFailure, apiErrors.ErrPartnerIntegration, string(domain.SourceASTO), err.Error())
	}

	records, dropped := extractASTO(response)

	summary, err := s.persist(ctx, domain.SourceASTO, records, len(response), dropped)
	if err != nil {
		return nil, err
	}

	s.audit(userEmail, summary)

	return summary, nil
}

// persist atribui cada venda pela carteira e grava em lotes limitados,
// com pausa entre um lote e o próximo
func (s *service) persist(ctx context.Context, source domain.SalesSource, records []*domain.SalesRecord, processed, dropped int) (*Summary, error) {
	summary := &Summary{
		Source:    source,
		Processed: processed,
		Dropped:   dropped,
	}

	for _, record := range records {
		if record.ClientCNPJ != nil {
			ref, err := s.portfolioService.MapSaleToConsultant(*record.ClientCNPJ)
			if err != nil {
				return nil, NewPipelineError(ErrPortfolioUnavailable, apiErrors.ErrInternalServer, string(source), err.Error())
			}
			record.ConsultantUID = ref.ConsultantUID
			record.ManagerUID = ref.ManagerUID
		}

		if record.IsOrphan() {
			summary.Orphans++
		}
	}

	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}

		if start > 0 && s.flushDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.flushDelay):
			}
		}

		batch := records[start:end]
		if _, err := s.salesRecordRepo.BatchUpsert(batch); err != nil {
			return nil, NewPipelineError(ErrPersistenceFailure, apiErrors.ErrInternalServer, string(source), err.Error())
		}

		summary.Written += len(batch)

		logrus.Debugf("Lote de %d vendas %s gravado (%d/%d)", len(batch), source, summary.Written, len(records))
	}

	logrus.Infof(
		"Carga %s concluída: %d processadas, %d gravadas, %d órfãs, %d descartadas",
		source, summary.Processed, summary.Written, summary.Orphans, summary.Dropped,
	)

	return summary, nil
}

// audit registra a carga na trilha de auditoria; falha aqui não desfaz a
// carga, apenas gera alerta no log
func (s *service) audit(userEmail string, summary *Summary) {
	id, err := utils.GenerateUID()
	if err != nil {
		logrus.Warnf("Erro ao gerar id do log de auditoria: %v", err)
		return
	}

	entry := &domain.AuditLog{
		ID:        id,
		Timestamp: time.Now(),
		UserEmail: userEmail,
		Action:    domain.AuditActionIngestion,
		Details: fmt.Sprintf(
			"origem=%s processadas=%d gravadas=%d orfas=%d descartadas=%d",
			summary.Source, summary.Processed, summary.Written, summary.Orphans, summary.Dropped,
		),
	}

	if err := s.auditLogRepo.Insert(entry); err != nil {
		logrus.Warnf("Erro ao gravar log de auditoria da carga %s: %v", summary.Source, err)
	}
}
