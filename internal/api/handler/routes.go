package handler

import (
	"net/http"

	"github.com/rovema/bi-comercial-api/infrastructure/repository"
	"github.com/rovema/bi-comercial-api/internal/api/handler/router"
	"github.com/rovema/bi-comercial-api/internal/usecases/aggregating"
	"github.com/rovema/bi-comercial-api/internal/usecases/authenticating"
	"github.com/rovema/bi-comercial-api/internal/usecases/ingesting"
	"github.com/rovema/bi-comercial-api/internal/usecases/portfolio"
	"github.com/rovema/bi-comercial-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users/:uid/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:uid/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:uid",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:uid",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Ingestion retorna as rotas de carga de vendas: upload de CSV e
// sincronização via API dos parceiros
func Ingestion(service ingesting.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ingest/:source",
			Method:      http.MethodPost,
			Handler:     IngestSales(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/sync/eliq",
			Method:      http.MethodPost,
			Handler:     SyncELIQ(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/sync/asto",
			Method:      http.MethodPost,
			Handler:     SyncASTO(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

// Portfolio retorna as rotas de gestão da carteira de clientes e de vendas
// órfãs
func Portfolio(portfolioService portfolio.Service, aggregatingService aggregating.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/portfolio",
			Method:      http.MethodGet,
			Handler:     ListPortfolio(portfolioService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/portfolio",
			Method:      http.MethodPost,
			Handler:     SavePortfolioEntry(portfolioService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/portfolio/:cnpj",
			Method:      http.MethodDelete,
			Handler:     RemovePortfolioEntry(portfolioService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/me/portfolio",
			Method:      http.MethodGet,
			Handler:     GetMyPortfolio(portfolioService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/sales",
			Method:      http.MethodGet,
			Handler:     GetMySales(aggregatingService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/orphans",
			Method:      http.MethodGet,
			Handler:     ListOrphanSales(portfolioService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/sales/orphans/reassign",
			Method:      http.MethodPost,
			Handler:     ReassignOrphanSale(portfolioService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

// Aggregation retorna as rotas de agregação mensal e do dashboard
func Aggregation(service aggregating.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/insights/monthly",
			Method:      http.MethodGet,
			Handler:     GetMonthlyRevenue(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/dashboard/kpis",
			Method:      http.MethodGet,
			Handler:     GetDashboardKPIs(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

// AuditLogs retorna a rota de consulta da trilha de auditoria
func AuditLogs(repo repository.AuditLogRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/audit-logs",
			Method:      http.MethodGet,
			Handler:     ListAuditLogs(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
