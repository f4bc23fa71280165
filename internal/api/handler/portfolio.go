package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/internal/usecases/aggregating"
	"github.com/rovema/bi-comercial-api/internal/usecases/portfolio"
	"github.com/rovema/bi-comercial-api/pkg/apiErrors"
	"github.com/rovema/bi-comercial-api/pkg/log"
	"github.com/rovema/bi-comercial-api/pkg/middleware"
)

type SavePortfolioEntryRequest struct {
	CNPJ          string  `json:"cnpj"`
	ClientName    string  `json:"client_name"`
	ConsultantUID string  `json:"consultant_uid"`
	ManagerUID    *string `json:"manager_uid"`
}

// ListPortfolio retorna a carteira completa de clientes
func ListPortfolio(service portfolio.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		entries, err := service.List()
		if err != nil {
			logger.WithError(err).Error("portfolio: erro ao buscar carteira")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar carteira", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.WithError(err).Error("portfolio: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// SavePortfolioEntry cria ou atualiza o vínculo de um CNPJ com um consultor
func SavePortfolioEntry(service portfolio.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req SavePortfolioEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.CNPJ == "" || req.ConsultantUID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "CNPJ e consultor são obrigatórios", nil)
			return
		}

		entry := &domain.PortfolioEntry{
			CNPJ:          req.CNPJ,
			ClientName:    req.ClientName,
			ConsultantUID: req.ConsultantUID,
			ManagerUID:    req.ManagerUID,
		}

		if err := service.Save(entry, userClaims.UserEmail); err != nil {
			logger.WithError(err).Error("portfolio: erro ao gravar vínculo da carteira")

			if strings.Contains(err.Error(), "CNPJ inválido") {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar carteira", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entry)
	})
}

// RemovePortfolioEntry remove o vínculo de um CNPJ da carteira
func RemovePortfolioEntry(service portfolio.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cnpj := httprouter.ParamsFromContext(r.Context()).ByName("cnpj")
		if cnpj == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "CNPJ não fornecido", nil)
			return
		}

		if err := service.Remove(cnpj, userClaims.UserEmail); err != nil {
			logger.WithError(err).Error("portfolio: erro ao remover vínculo da carteira")

			if strings.Contains(err.Error(), "CNPJ inválido") {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover da carteira", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	})
}

// GetMyPortfolio retorna a carteira de clientes do consultor logado
func GetMyPortfolio(service portfolio.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		entries, err := service.ListByConsultant(userClaims.UserUID)
		if err != nil {
			logger.WithError(err).Error("portfolio: erro ao buscar carteira do consultor")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar carteira", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.WithError(err).Error("portfolio: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// GetMySales resume as vendas atribuídas ao consultor logado no período
func GetMySales(service aggregating.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		startDate, endDate, err := parsePeriod(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		report, err := service.ConsultantSales(userClaims.UserUID, startDate, endDate)
		if err != nil {
			logger.WithError(err).Error("portfolio: erro ao buscar vendas do consultor")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("portfolio: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
