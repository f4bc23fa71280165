package domain

import (
	"fmt"
	"time"
)

// SalesSource identifica a origem de um registro de venda
type SalesSource string

const (
	SourceBionio    SalesSource = "BIONIO"
	SourceRovemaPay SalesSource = "ROVEMAPAY"
	SourceASTO      SalesSource = "ASTO"
	SourceELIQ      SalesSource = "ELIQ"
)

// ParseSalesSource converte o identificador textual de uma origem
func ParseSalesSource(s string) (SalesSource, bool) {
	switch SalesSource(s) {
	case SourceBionio, SourceRovemaPay, SourceASTO, SourceELIQ:
		return SalesSource(s), true
	}
	return "", false
}

// SalesRecord é o registro unificado de venda persistido em sales_records.
// ConsultantUID e ManagerUID nulos ao mesmo tempo caracterizam uma venda órfã.
type SalesRecord struct {
	ID            string      `json:"id"`
	Source        SalesSource `json:"source"`
	RawID         string      `json:"raw_id"`
	ClientCNPJ    *string     `json:"client_cnpj"`
	ClientName    string      `json:"client_name"`
	ConsultantUID *string     `json:"consultant_uid"`
	ManagerUID    *string     `json:"manager_uid"`
	Date          time.Time   `json:"date"`
	RevenueGross  float64     `json:"revenue_gross"`
	RevenueNet    float64     `json:"revenue_net"`
	ProductName   string      `json:"product_name"`
	ProductDetail string      `json:"product_detail"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// DocumentID monta a chave determinística de um registro ({SOURCE}_{raw_id}).
// Reingestões do mesmo dado produzem sempre a mesma chave.
func DocumentID(source SalesSource, rawID string) string {
	return fmt.Sprintf("%s_%s", source, rawID)
}

// IsOrphan indica se o registro não foi atribuído a nenhum consultor
func (r *SalesRecord) IsOrphan() bool {
	return r.ConsultantUID == nil && r.ManagerUID == nil
}

// Revenue retorna a receita da venda (bruto menos líquido)
func (r *SalesRecord) Revenue() float64 {
	return r.RevenueGross - r.RevenueNet
}

// CostPercent calcula o percentual de custo de uma venda:
// (bruto - líquido) / bruto * 100, com 0 quando o bruto é zero.
func CostPercent(gross, net float64) float64 {
	if gross == 0 {
		return 0
	}
	return (gross - net) / gross * 100
}
