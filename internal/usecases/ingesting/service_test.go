package ingesting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rovema/bi-comercial-api/infrastructure/integrator/asto/astoclient"
	astomocks "github.com/rovema/bi-comercial-api/infrastructure/integrator/asto/mocks"
	"github.com/rovema/bi-comercial-api/infrastructure/integrator/eliq/eliqclient"
	eliqmocks "github.com/rovema/bi-comercial-api/infrastructure/integrator/eliq/mocks"
	repomocks "github.com/rovema/bi-comercial-api/infrastructure/repository/mocks"
	"github.com/rovema/bi-comercial-api/internal/config"
	"github.com/rovema/bi-comercial-api/internal/domain"
	portfoliomocks "github.com/rovema/bi-comercial-api/internal/usecases/portfolio/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	portfolio   *portfoliomocks.MockService
	salesRecord *repomocks.MockSalesRecordRepository
	auditLog    *repomocks.MockAuditLogRepository
	eliqClient  *eliqmocks.MockClient
	astoClient  *astomocks.MockClient
}

func newTestService(ctrl *gomock.Controller, cfg *config.Config) (Service, *serviceMocks) {
	m := &serviceMocks{
		portfolio:   portfoliomocks.NewMockService(ctrl),
		salesRecord: repomocks.NewMockSalesRecordRepository(ctrl),
		auditLog:    repomocks.NewMockAuditLogRepository(ctrl),
		eliqClient:  eliqmocks.NewMockClient(ctrl),
		astoClient:  astomocks.NewMockClient(ctrl),
	}
	return NewService(cfg, m.portfolio, m.salesRecord, m.auditLog, m.eliqClient, m.astoClient), m
}

func testConfig() *config.Config {
	return &config.Config{
		Ingest: config.Ingest{BatchSize: 2, FlushDelaySeconds: 0},
	}
}

const bionioCSV = `número_do_pedido;organização;cnpj_da_organização;data_da_criação_do_pedido;valor_total_do_pedido;status_do_pedido
1001;Padaria Central;04.858.631/0001-52;15/03/2025;1.234,56;Transferido
1002;Mercado Sul;11.222.333/0001-81;16/03/2025;500,00;Pago e Agendado
1003;Cliente Avulso;;17/03/2025;80,00;Transferido
1004;Posto Norte;99.888.777/0001-66;18/03/2025;60,00;Cancelado
1005;Farmácia Leste;22.333.444/0001-05;data ruim;40,00;Transferido
`

func TestIngestCSV(t *testing.T) {
	consultantUID := "c-uid-1"

	tests := []struct {
		name     string
		source   domain.SalesSource
		file     string
		setup    func(m *serviceMocks, batches *[]int)
		validate func(t *testing.T, summary *Summary, batches []int, err error)
	}{
		{
			name:   "carga Bionio atribui pela carteira e grava em lotes",
			source: domain.SourceBionio,
			file:   bionioCSV,
			setup: func(m *serviceMocks, batches *[]int) {
				m.portfolio.EXPECT().
					MapSaleToConsultant("04858631000152").
					Return(&domain.PortfolioRef{ConsultantUID: &consultantUID}, nil)
				m.portfolio.EXPECT().
					MapSaleToConsultant("11222333000181").
					Return(&domain.PortfolioRef{}, nil)

				m.salesRecord.EXPECT().
					BatchUpsert(gomock.Any()).
					DoAndReturn(func(batch []*domain.SalesRecord) (int64, error) {
						*batches = append(*batches, len(batch))
						return int64(len(batch)), nil
					}).
					Times(2)

				m.auditLog.EXPECT().
					Insert(gomock.Any()).
					DoAndReturn(func(entry *domain.AuditLog) error {
						assert.Equal(t, domain.AuditActionIngestion, entry.Action)
						assert.Equal(t, "operador@rovema.com.br", entry.UserEmail)
						assert.Contains(t, entry.Details, "origem=BIONIO")
						assert.Contains(t, entry.Details, "gravadas=3")
						return nil
					})
			},
			validate: func(t *testing.T, summary *Summary, batches []int, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.SourceBionio, summary.Source)
				assert.Equal(t, 5, summary.Processed)
				assert.Equal(t, 3, summary.Written)
				assert.Equal(t, 2, summary.Dropped)
				assert.Equal(t, 2, summary.Orphans, "venda sem CNPJ e CNPJ fora da carteira contam como órfãs")
				assert.Equal(t, []int{2, 1}, batches, "lotes respeitam o teto configurado")
			},
		},
		{
			name:   "origem sem carga por arquivo",
			source: domain.SourceELIQ,
			file:   bionioCSV,
			setup:  func(m *serviceMocks, batches *[]int) {},
			validate: func(t *testing.T, summary *Summary, batches []int, err error) {
				require.Error(t, err)
				assert.Nil(t, summary)
				assert.True(t, errors.Is(err, ErrSourceNotCSV))
			},
		},
		{
			name:   "coluna obrigatória ausente interrompe antes de gravar",
			source: domain.SourceBionio,
			file:   "pedido;cnpj\n1001;04858631000152\n",
			setup:  func(m *serviceMocks, batches *[]int) {},
			validate: func(t *testing.T, summary *Summary, batches []int, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMissingColumn))
				assert.Empty(t, batches)
			},
		},
		{
			name:   "carteira indisponível aborta a carga",
			source: domain.SourceBionio,
			file:   bionioCSV,
			setup: func(m *serviceMocks, batches *[]int) {
				m.portfolio.EXPECT().
					MapSaleToConsultant("04858631000152").
					Return(nil, fmt.Errorf("erro ao carregar carteira: conexão recusada"))
			},
			validate: func(t *testing.T, summary *Summary, batches []int, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrPortfolioUnavailable))

				var pipelineErr *PipelineError
				require.True(t, errors.As(err, &pipelineErr))
				assert.Equal(t, "SRV_001", pipelineErr.Code)
			},
		},
		{
			name:   "falha de persistência aborta a carga",
			source: domain.SourceBionio,
			file:   bionioCSV,
			setup: func(m *serviceMocks, batches *[]int) {
				m.portfolio.EXPECT().
					MapSaleToConsultant(gomock.Any()).
					Return(&domain.PortfolioRef{}, nil).
					Times(2)
				m.salesRecord.EXPECT().
					BatchUpsert(gomock.Any()).
					Return(int64(0), fmt.Errorf("deadlock detected"))
			},
			validate: func(t *testing.T, summary *Summary, batches []int, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrPersistenceFailure))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl, testConfig())

			var batches []int
			tt.setup(m, &batches)

			summary, err := service.IngestCSV(context.Background(), tt.source, strings.NewReader(tt.file), "operador@rovema.com.br")
			tt.validate(t, summary, batches, err)
		})
	}
}

func TestIngestCSVContextCancelledBetweenBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{Ingest: config.Ingest{BatchSize: 1, FlushDelaySeconds: 1}}
	service, m := newTestService(ctrl, cfg)

	m.portfolio.EXPECT().
		MapSaleToConsultant(gomock.Any()).
		Return(&domain.PortfolioRef{}, nil).
		Times(2)
	// Só o primeiro lote entra: a pausa entre lotes observa o contexto
	m.salesRecord.EXPECT().
		BatchUpsert(gomock.Any()).
		Return(int64(1), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := service.IngestCSV(ctx, domain.SourceBionio, strings.NewReader(bionioCSV), "operador@rovema.com.br")

	require.Error(t, err)
	assert.Nil(t, summary)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSyncELIQ(t *testing.T) {
	startDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("recargas confirmadas são atribuídas e gravadas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl, testConfig())

		m.eliqClient.EXPECT().
			GetRecharges(eliqclient.RechargeConsultationParams{StartDate: "2025-03-01", EndDate: "2025-03-31"}).
			Return(eliqclient.RechargeConsultationResponse{
				{ID: 501, DataCadastro: "2025-03-10T08:30:00", ValorTotal: "150,00", CNPJCliente: "04858631000152", NomeCliente: "Posto Norte", Status: "confirmada"},
				{ID: 502, DataCadastro: "2025-03-11T09:00:00", ValorTotal: "80,00", CNPJCliente: "11222333000181", NomeCliente: "Mercado Sul", Status: "cancelada"},
			}, nil)

		consultantUID := "c-uid-1"
		m.portfolio.EXPECT().
			MapSaleToConsultant("04858631000152").
			Return(&domain.PortfolioRef{ConsultantUID: &consultantUID}, nil)

		m.salesRecord.EXPECT().
			BatchUpsert(gomock.Any()).
			DoAndReturn(func(batch []*domain.SalesRecord) (int64, error) {
				require.Len(t, batch, 1)
				assert.Equal(t, "ELIQ_501", batch[0].ID)
				return 1, nil
			})

		m.auditLog.EXPECT().Insert(gomock.Any()).Return(nil)

		summary, err := service.SyncELIQ(context.Background(), startDate, endDate, "operador@rovema.com.br")

		require.NoError(t, err)
		assert.Equal(t, domain.SourceELIQ, summary.Source)
		assert.Equal(t, 2, summary.Processed)
		assert.Equal(t, 1, summary.Written)
		assert.Equal(t, 1, summary.Dropped)
		assert.Equal(t, 0, summary.Orphans)
	})

	t.Run("falha na API do parceiro vira erro de integração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl, testConfig())

		m.eliqClient.EXPECT().
			GetRecharges(gomock.Any()).
			Return(nil, fmt.Errorf("timeout"))

		summary, err := service.SyncELIQ(context.Background(), startDate, endDate, "operador@rovema.com.br")

		require.Error(t, err)
		assert.Nil(t, summary)
		assert.True(t, errors.Is(err, ErrIntegrationFailure))

		var pipelineErr *PipelineError
		require.True(t, errors.As(err, &pipelineErr))
		assert.Equal(t, "SRV_005", pipelineErr.Code)
		assert.Equal(t, string(domain.SourceELIQ), pipelineErr.Source)
	})
}

func TestSyncASTO(t *testing.T) {
	startDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("desabilitada por padrão, não consulta o parceiro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newTestService(ctrl, testConfig())

		summary, err := service.SyncASTO(context.Background(), startDate, endDate, "operador@rovema.com.br")

		require.Error(t, err)
		assert.Nil(t, summary)
		assert.True(t, errors.Is(err, ErrIntegrationDisabled))

		var pipelineErr *PipelineError
		require.True(t, errors.As(err, &pipelineErr))
		assert.Equal(t, "SRV_005", pipelineErr.Code)
	})

	t.Run("habilitada grava tudo como órfã por falta de CNPJ", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cfg := testConfig()
		cfg.ASTO.SyncEnabled = true
		service, m := newTestService(ctrl, cfg)

		m.astoClient.EXPECT().
			GetSettlements(astoclient.SettlementConsultationParams{StartDate: "2025-03-01", EndDate: "2025-03-31"}).
			Return(astoclient.SettlementConsultationResponse{
				{ID: 901, DataFimApuracao: "2025-03-31", ValorBruto: 5000.00, ValorLiquido: 4750.00},
			}, nil)

		m.salesRecord.EXPECT().BatchUpsert(gomock.Any()).Return(int64(1), nil)
		m.auditLog.EXPECT().Insert(gomock.Any()).Return(nil)

		summary, err := service.SyncASTO(context.Background(), startDate, endDate, "operador@rovema.com.br")

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Written)
		assert.Equal(t, 1, summary.Orphans)
	})
}
