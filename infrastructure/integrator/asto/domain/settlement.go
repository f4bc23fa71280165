package domain

// Settlement é uma apuração de recebíveis retornada pela API da ASTO.
// O retorno não traz o CNPJ do cliente, limitação conhecida do parceiro.
type Settlement struct {
	ID              int64   `json:"id"`
	DataFimApuracao string  `json:"dataFimApuracao"`
	ValorBruto      float64 `json:"valorBruto"`
	ValorLiquido    float64 `json:"valorLiquido"`
}
