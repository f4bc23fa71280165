package domain

// Recharge é uma recarga retornada pela API da ELIQ.
// Valores monetários chegam como string no formato brasileiro.
type Recharge struct {
	ID           int64  `json:"id"`
	DataCadastro string `json:"data_cadastro"`
	ValorTotal   string `json:"valor_total"`
	CNPJCliente  string `json:"cnpj_cliente"`
	NomeCliente  string `json:"nome_cliente"`
	Status       string `json:"status"`
}
