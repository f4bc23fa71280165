package ingesting

import (
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/pkg/normalize"
	"github.com/sirupsen/logrus"
)

// Pedidos Bionio só contam depois do repasse financeiro
var bionioAcceptedStatuses = map[string]bool{
	"Transferido":     true,
	"Pago e Agendado": true,
}

// extractBionio converte as linhas da exportação do marketplace Bionio em
// registros de venda. Pedido de marketplace não tem deságio, então bruto e
// líquido recebem o mesmo valor.
func extractBionio(header []string, rows [][]string) ([]*domain.SalesRecord, int, error) {
	index, err := bionioSchema.resolve(header, string(domain.SourceBionio))
	if err != nil {
		return nil, 0, err
	}

	records := make([]*domain.SalesRecord, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		status := index.value(row, fieldStatus)
		if !bionioAcceptedStatuses[status] {
			dropped++
			continue
		}

		rawID := index.value(row, fieldRawID)
		if rawID == "" {
			logrus.Warnf("Bionio: linha %d sem número de pedido, descartada", i+2)
			dropped++
			continue
		}

		date, err := normalize.ParseDate(index.value(row, fieldDate))
		if err != nil {
			logrus.Warnf("Bionio: pedido %s com data inválida %q, descartado", rawID, index.value(row, fieldDate))
			dropped++
			continue
		}

		cnpj, ok := normalize.CleanCNPJ(index.value(row, fieldCNPJ))
		var cnpjPtr *string
		if ok {
			cnpjPtr = &cnpj
		}

		gross := normalize.CleanValue(index.value(row, fieldGross))

		records = append(records, &domain.SalesRecord{
			ID:           domain.DocumentID(domain.SourceBionio, rawID),
			Source:       domain.SourceBionio,
			RawID:        rawID,
			ClientCNPJ:   cnpjPtr,
			ClientName:   index.value(row, fieldClientName),
			Date:         date,
			RevenueGross: gross,
			RevenueNet:   gross,
			ProductName:  "Bionio",
			Status:       status,
		})
	}

	return records, dropped, nil
}
