package domain

// MonthlyBucket agrega as vendas de uma origem em um mês (formato yyyy-mm).
// Para a RovemaPay os buckets são adicionalmente quebrados por status.
type MonthlyBucket struct {
	Month        string  `json:"month"`
	Status       string  `json:"status,omitempty"`
	Gross        float64 `json:"gross"`
	Net          float64 `json:"net"`
	Revenue      float64 `json:"revenue"`
	CostPercent  float64 `json:"cost_percent"`
	SalesCount   int     `json:"sales_count"`
	ClientsCount int     `json:"clients_count"`
}
