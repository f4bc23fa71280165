package handler

import (
	"net/http"
	"time"

	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/internal/usecases/aggregating"
	"github.com/rovema/bi-comercial-api/pkg/apiErrors"
	"github.com/rovema/bi-comercial-api/pkg/log"
)

// GetMonthlyRevenue retorna a agregação mensal de vendas de uma origem no
// período informado. Vendas RovemaPay vêm quebradas por status.
func GetMonthlyRevenue(service aggregating.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		source, ok := domain.ParseSalesSource(r.URL.Query().Get("source"))
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Origem de dados desconhecida", nil)
			return
		}

		startDate, endDate, err := parsePeriod(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"source":     source,
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Info("monthly-revenue: gerando agregação mensal")

		buckets, err := service.Monthly(source, startDate, endDate)
		if err != nil {
			logger.WithError(err).Error("monthly-revenue: erro ao agregar vendas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao agregar vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(buckets); err != nil {
			logger.WithError(err).Error("monthly-revenue: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// GetDashboardKPIs retorna o último snapshot consolidado do dashboard com a
// tabela de oportunidades de venda cruzada
func GetDashboardKPIs(service aggregating.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		report, err := service.DashboardKPIs()
		if err != nil {
			logger.WithError(err).Error("dashboard-kpis: erro ao buscar snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar indicadores", nil)
			return
		}

		if report == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Nenhum snapshot de indicadores calculado ainda", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("dashboard-kpis: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
