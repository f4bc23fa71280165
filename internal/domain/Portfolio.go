package domain

import (
	"time"
)

// PortfolioEntry vincula um CNPJ de cliente ao consultor responsável.
// A chave da carteira é sempre o CNPJ normalizado (14 dígitos).
type PortfolioEntry struct {
	CNPJ          string    `json:"cnpj"`
	ClientName    string    `json:"client_name"`
	ConsultantUID string    `json:"consultant_uid"`
	ManagerUID    *string   `json:"manager_uid"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PortfolioRef é o par consultor/gestor resolvido para uma venda
type PortfolioRef struct {
	ConsultantUID *string
	ManagerUID    *string
}
