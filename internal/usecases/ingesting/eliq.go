package ingesting

import (
	"strconv"
	"strings"

	eliqdomain "github.com/rovema/bi-comercial-api/infrastructure/integrator/eliq/domain"
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/pkg/normalize"
	"github.com/sirupsen/logrus"
)

const eliqAcceptedStatus = "confirmada"

// extractELIQ converte recargas da API da ELIQ em registros de venda.
// Recarga não tem deságio, bruto e líquido recebem o mesmo valor.
func extractELIQ(recharges []eliqdomain.Recharge) ([]*domain.SalesRecord, int) {
	records := make([]*domain.SalesRecord, 0, len(recharges))
	dropped := 0

	for _, recharge := range recharges {
		if !strings.EqualFold(recharge.Status, eliqAcceptedStatus) {
			dropped++
			continue
		}

		rawID := strconv.FormatInt(recharge.ID, 10)

		date, err := normalize.ParseDate(recharge.DataCadastro)
		if err != nil {
			logrus.Warnf("ELIQ: recarga %s com data inválida %q, descartada", rawID, recharge.DataCadastro)
			dropped++
			continue
		}

		cnpj, ok := normalize.CleanCNPJ(recharge.CNPJCliente)
		var cnpjPtr *string
		if ok {
			cnpjPtr = &cnpj
		}

		value := normalize.CleanValue(recharge.ValorTotal)

		records = append(records, &domain.SalesRecord{
			ID:           domain.DocumentID(domain.SourceELIQ, rawID),
			Source:       domain.SourceELIQ,
			RawID:        rawID,
			ClientCNPJ:   cnpjPtr,
			ClientName:   recharge.NomeCliente,
			Date:         date,
			RevenueGross: value,
			RevenueNet:   value,
			ProductName:  "ELIQ",
			Status:       recharge.Status,
		})
	}

	return records, dropped
}
