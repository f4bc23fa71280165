package ingesting

import (
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/pkg/normalize"
	"github.com/sirupsen/logrus"
)

// Vendas RovemaPay contam quando liquidadas ou antecipadas
var rovemapayAcceptedStatuses = map[string]bool{
	"Pago":       true,
	"Antecipado": true,
}

// extractRovemaPay converte as linhas da exportação da adquirência
// RovemaPay em registros de venda. Bruto e líquido vêm separados; a
// diferença entre eles é a receita da operação.
func extractRovemaPay(header []string, rows [][]string) ([]*domain.SalesRecord, int, error) {
	index, err := rovemapaySchema.resolve(header, string(domain.SourceRovemaPay))
	if err != nil {
		return nil, 0, err
	}

	records := make([]*domain.SalesRecord, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		status := index.value(row, fieldStatus)
		if !rovemapayAcceptedStatuses[status] {
			dropped++
			continue
		}

		rawID := index.value(row, fieldRawID)
		if rawID == "" {
			logrus.Warnf("RovemaPay: linha %d sem id de venda, descartada", i+2)
			dropped++
			continue
		}

		date, err := normalize.ParseDate(index.value(row, fieldDate))
		if err != nil {
			logrus.Warnf("RovemaPay: venda %s com data inválida %q, descartada", rawID, index.value(row, fieldDate))
			dropped++
			continue
		}

		cnpj, ok := normalize.CleanCNPJ(index.value(row, fieldCNPJ))
		var cnpjPtr *string
		if ok {
			cnpjPtr = &cnpj
		}

		records = append(records, &domain.SalesRecord{
			ID:            domain.DocumentID(domain.SourceRovemaPay, rawID),
			Source:        domain.SourceRovemaPay,
			RawID:         rawID,
			ClientCNPJ:    cnpjPtr,
			ClientName:    index.value(row, fieldClientName),
			Date:          date,
			RevenueGross:  normalize.CleanValue(index.value(row, fieldGross)),
			RevenueNet:    normalize.CleanValue(index.value(row, fieldNet)),
			ProductName:   "RovemaPay",
			ProductDetail: index.value(row, fieldDetail),
			Status:        status,
		})
	}

	return records, dropped, nil
}
