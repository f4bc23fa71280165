package ingesting

import (
	"strconv"

	astodomain "github.com/rovema/bi-comercial-api/infrastructure/integrator/asto/domain"
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/pkg/normalize"
	"github.com/sirupsen/logrus"
)

// extractASTO converte apurações da API da ASTO em registros de venda.
// O retorno do parceiro não traz CNPJ, então todo registro entra sem
// atribuição. Por isso a sincronização fica atrás de uma flag, desligada
// por padrão, até o parceiro corrigir o contrato de dados.
func extractASTO(settlements []astodomain.Settlement) ([]*domain.SalesRecord, int) {
	records := make([]*domain.SalesRecord, 0, len(settlements))
	dropped := 0

	for _, settlement := range settlements {
		rawID := strconv.FormatInt(settlement.ID, 10)

		date, err := normalize.ParseDate(settlement.DataFimApuracao)
		if err != nil {
			logrus.Warnf("ASTO: apuração %s com data inválida %q, descartada", rawID, settlement.DataFimApuracao)
			dropped++
			continue
		}

		records = append(records, &domain.SalesRecord{
			ID:           domain.DocumentID(domain.SourceASTO, rawID),
			Source:       domain.SourceASTO,
			RawID:        rawID,
			Date:         date,
			RevenueGross: settlement.ValorBruto,
			RevenueNet:   settlement.ValorLiquido,
			ProductName:  "ASTO",
		})
	}

	return records, dropped
}
