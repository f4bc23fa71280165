package ingesting

import (
	"testing"
	"time"

	astodomain "github.com/rovema/bi-comercial-api/infrastructure/integrator/asto/domain"
	eliqdomain "github.com/rovema/bi-comercial-api/infrastructure/integrator/eliq/domain"
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bionioHeader = []string{"número_do_pedido", "organização", "cnpj_da_organização", "data_da_criação_do_pedido", "valor_total_do_pedido", "status_do_pedido"}

func TestExtractBionio(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		validate func(t *testing.T, records []*domain.SalesRecord, dropped int)
	}{
		{
			name: "pedido transferido vira registro com bruto igual ao líquido",
			rows: [][]string{
				{"1001", "Padaria Central", "04.858.631/0001-52", "15/03/2025 10:42:00", "1.234,56", "Transferido"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				require.Len(t, records, 1)
				assert.Equal(t, 0, dropped)

				record := records[0]
				assert.Equal(t, "BIONIO_1001", record.ID)
				assert.Equal(t, domain.SourceBionio, record.Source)
				assert.Equal(t, "1001", record.RawID)
				require.NotNil(t, record.ClientCNPJ)
				assert.Equal(t, "04858631000152", *record.ClientCNPJ)
				assert.Equal(t, "Padaria Central", record.ClientName)
				assert.Equal(t, time.Date(2025, 3, 15, 10, 42, 0, 0, time.UTC), record.Date)
				assert.InDelta(t, 1234.56, record.RevenueGross, 0.0001)
				assert.InDelta(t, 1234.56, record.RevenueNet, 0.0001, "marketplace não tem deságio")
			},
		},
		{
			name: "status fora do repasse é descartado",
			rows: [][]string{
				{"1001", "Padaria Central", "04858631000152", "15/03/2025", "100,00", "Pago e Agendado"},
				{"1002", "Mercado Sul", "11222333000181", "16/03/2025", "50,00", "Cancelado"},
				{"1003", "Posto Norte", "99888777000166", "17/03/2025", "80,00", "Aguardando Pagamento"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				require.Len(t, records, 1)
				assert.Equal(t, 2, dropped)
				assert.Equal(t, "BIONIO_1001", records[0].ID)
			},
		},
		{
			name: "linha sem número de pedido é descartada",
			rows: [][]string{
				{"", "Padaria Central", "04858631000152", "15/03/2025", "100,00", "Transferido"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				assert.Empty(t, records)
				assert.Equal(t, 1, dropped)
			},
		},
		{
			name: "data ilegível descarta só a linha",
			rows: [][]string{
				{"1001", "Padaria Central", "04858631000152", "ontem", "100,00", "Transferido"},
				{"1002", "Mercado Sul", "11222333000181", "16/03/2025", "50,00", "Transferido"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				require.Len(t, records, 1)
				assert.Equal(t, 1, dropped)
				assert.Equal(t, "BIONIO_1002", records[0].ID)
			},
		},
		{
			name: "CNPJ degradado em notação científica é recuperado",
			rows: [][]string{
				{"1001", "Padaria Central", "4.858631000152e+12", "15/03/2025", "100,00", "Transferido"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				require.Len(t, records, 1)
				require.NotNil(t, records[0].ClientCNPJ)
				assert.Equal(t, "04858631000152", *records[0].ClientCNPJ)
			},
		},
		{
			name: "CNPJ irrecuperável entra como venda sem atribuição",
			rows: [][]string{
				{"1001", "Padaria Central", "", "15/03/2025", "100,00", "Transferido"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				require.Len(t, records, 1)
				assert.Nil(t, records[0].ClientCNPJ)
				assert.Equal(t, 0, dropped, "venda sem CNPJ não é descartada, vira órfã")
			},
		},
		{
			name: "mesma exportação gera sempre as mesmas chaves",
			rows: [][]string{
				{"1001", "Padaria Central", "04858631000152", "15/03/2025", "100,00", "Transferido"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				again, _, err := extractBionio(bionioHeader, [][]string{
					{"1001", "Padaria Central", "04858631000152", "15/03/2025", "100,00", "Transferido"},
				})
				require.NoError(t, err)
				require.Len(t, again, 1)
				assert.Equal(t, records[0].ID, again[0].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, dropped, err := extractBionio(bionioHeader, tt.rows)
			require.NoError(t, err)
			tt.validate(t, records, dropped)
		})
	}
}

var rovemapayHeader = []string{"id_venda", "ec", "cnpj", "venda", "bruto", "liquido", "bandeira", "status"}

func TestExtractRovemaPay(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		validate func(t *testing.T, records []*domain.SalesRecord, dropped int)
	}{
		{
			name: "venda paga carrega bruto e líquido separados",
			rows: [][]string{
				{"V-88", "Mercado Sul", "11.222.333/0001-81", "10/02/2025", "1.000,00", "970,00", "Visa", "Pago"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				require.Len(t, records, 1)
				assert.Equal(t, 0, dropped)

				record := records[0]
				assert.Equal(t, "ROVEMAPAY_V-88", record.ID)
				assert.InDelta(t, 1000.00, record.RevenueGross, 0.0001)
				assert.InDelta(t, 970.00, record.RevenueNet, 0.0001)
				assert.Equal(t, "Visa", record.ProductDetail)
				assert.Equal(t, "Pago", record.Status)
			},
		},
		{
			name: "antecipado conta, pendente e estornado não",
			rows: [][]string{
				{"V-1", "EC A", "11222333000181", "10/02/2025", "100,00", "97,00", "Visa", "Antecipado"},
				{"V-2", "EC B", "11222333000181", "10/02/2025", "100,00", "97,00", "Master", "Pendente"},
				{"V-3", "EC C", "11222333000181", "10/02/2025", "100,00", "97,00", "Elo", "Estornado"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				require.Len(t, records, 1)
				assert.Equal(t, 2, dropped)
				assert.Equal(t, "ROVEMAPAY_V-1", records[0].ID)
			},
		},
		{
			name: "linha sem id de venda é descartada",
			rows: [][]string{
				{"", "EC A", "11222333000181", "10/02/2025", "100,00", "97,00", "Visa", "Pago"},
			},
			validate: func(t *testing.T, records []*domain.SalesRecord, dropped int) {
				assert.Empty(t, records)
				assert.Equal(t, 1, dropped)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, dropped, err := extractRovemaPay(rovemapayHeader, tt.rows)
			require.NoError(t, err)
			tt.validate(t, records, dropped)
		})
	}
}

func TestExtractELIQ(t *testing.T) {
	recharges := []eliqdomain.Recharge{
		{ID: 501, DataCadastro: "2025-03-10T08:30:00", ValorTotal: "150,00", CNPJCliente: "04858631000152", NomeCliente: "Posto Norte", Status: "Confirmada"},
		{ID: 502, DataCadastro: "2025-03-11T09:00:00", ValorTotal: "80,00", CNPJCliente: "11222333000181", NomeCliente: "Mercado Sul", Status: "cancelada"},
		{ID: 503, DataCadastro: "inválida", ValorTotal: "60,00", CNPJCliente: "11222333000181", NomeCliente: "Mercado Sul", Status: "confirmada"},
	}

	records, dropped := extractELIQ(recharges)

	require.Len(t, records, 1)
	assert.Equal(t, 2, dropped)

	record := records[0]
	assert.Equal(t, "ELIQ_501", record.ID, "status confirmado é aceito sem distinção de caixa")
	assert.Equal(t, domain.SourceELIQ, record.Source)
	require.NotNil(t, record.ClientCNPJ)
	assert.Equal(t, "04858631000152", *record.ClientCNPJ)
	assert.InDelta(t, 150.00, record.RevenueGross, 0.0001)
	assert.InDelta(t, 150.00, record.RevenueNet, 0.0001, "recarga não tem deságio")
}

func TestExtractASTO(t *testing.T) {
	settlements := []astodomain.Settlement{
		{ID: 901, DataFimApuracao: "2025-03-31", ValorBruto: 5000.00, ValorLiquido: 4750.00},
		{ID: 902, DataFimApuracao: "sem data", ValorBruto: 100.00, ValorLiquido: 95.00},
	}

	records, dropped := extractASTO(settlements)

	require.Len(t, records, 1)
	assert.Equal(t, 1, dropped)

	record := records[0]
	assert.Equal(t, "ASTO_901", record.ID)
	assert.Nil(t, record.ClientCNPJ, "o retorno da ASTO não traz CNPJ")
	assert.InDelta(t, 5000.00, record.RevenueGross, 0.0001)
	assert.InDelta(t, 4750.00, record.RevenueNet, 0.0001)
}
