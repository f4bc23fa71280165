package domain

import (
	"time"
)

// Ações registradas na trilha de auditoria
const (
	AuditActionIngestion     = "INGESTAO"
	AuditActionReassignment  = "REATRIBUICAO"
	AuditActionPortfolioEdit = "CARTEIRA"
	AuditActionUserEdit      = "USUARIO"
	AuditActionLoginFailed   = "LOGIN_FALHOU"
	AuditActionKPIRefresh    = "KPI_RECALCULO"
)

// AuditLog é um registro imutável da trilha de auditoria
type AuditLog struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserEmail string    `json:"user_email"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}
