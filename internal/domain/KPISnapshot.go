package domain

import (
	"time"
)

// KPISnapshot é o consolidado pré-calculado exibido no dashboard.
// Recalculado pelo agendador noturno ou por disparo manual; em caso de falha
// no recálculo o último snapshot persistido continua disponível para leitura.
type KPISnapshot struct {
	ID                 int64     `json:"id"`
	RovemaPayGMV       float64   `json:"rovemapay_gmv"`
	RovemaPayRevenue   float64   `json:"rovemapay_receita"`
	RovemaPayAvgTicket float64   `json:"rovemapay_ticket_medio"`
	RovemaPayClients   int       `json:"rovemapay_clientes_ativos"`
	BionioGMV          float64   `json:"bionio_gmv"`
	BionioOrders       int       `json:"bionio_pedidos_total"`
	BionioOrgs         int       `json:"bionio_orgs_ativas"`
	CrossoverClients   int       `json:"clientes_crossover"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// Opportunity é um cliente RovemaPay sem nenhum pedido Bionio,
// candidato de venda cruzada listado na tabela de oportunidades.
type Opportunity struct {
	CNPJ         string  `json:"cnpj"`
	ClientName   string  `json:"client_name"`
	RovemaPayGMV float64 `json:"rovemapay_gmv"`
	SalesCount   int     `json:"sales_count"`
}
