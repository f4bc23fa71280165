package handler

import (
	"net/http"
	"strconv"

	"github.com/rovema/bi-comercial-api/infrastructure/repository"
	"github.com/rovema/bi-comercial-api/pkg/apiErrors"
	"github.com/rovema/bi-comercial-api/pkg/log"
)

const defaultAuditLogLimit = 200

// ListAuditLogs retorna os registros mais recentes da trilha de auditoria
func ListAuditLogs(repo repository.AuditLogRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		limit := uint64(defaultAuditLogLimit)
		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			parsed, err := strconv.ParseUint(limitParam, 10, 64)
			if err != nil || parsed == 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limite inválido", nil)
				return
			}
			limit = parsed
		}

		logs, err := repo.List(limit)
		if err != nil {
			logger.WithError(err).Error("audit: erro ao buscar trilha de auditoria")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar trilha de auditoria", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(logs); err != nil {
			logger.WithError(err).Error("audit: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
