package ingesting

import (
	"errors"
	"fmt"
)

// Tipos de erros do pipeline de ingestão
var (
	// Erros de entrada
	ErrUnknownSource   = errors.New("origem de dados desconhecida")
	ErrEmptyFile       = errors.New("arquivo vazio")
	ErrMalformedFile   = errors.New("arquivo malformado")
	ErrMissingColumn   = errors.New("coluna obrigatória ausente")
	ErrSourceNotCSV    = errors.New("origem não aceita carga por arquivo")
	ErrSourceNotSynced = errors.New("origem não possui sincronização por API")

	// Erros de infraestrutura
	ErrIntegrationDisabled  = errors.New("integração desabilitada por configuração")
	ErrIntegrationFailure   = errors.New("erro ao consultar API do parceiro")
	ErrPersistenceFailure   = errors.New("erro ao persistir lote de vendas")
	ErrPortfolioUnavailable = errors.New("erro ao carregar carteira de clientes")
)

// PipelineError é um erro de ingestão com contexto adicional.
// Linha ruim não gera PipelineError: vira contagem de descarte no resumo.
// O erro aparece quando a carga inteira não pode prosseguir.
type PipelineError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Source  string // Origem sendo carregada
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// IsInputError verifica se o erro é culpa do arquivo enviado
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownSource) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrMalformedFile) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrSourceNotCSV) ||
		errors.Is(err, ErrSourceNotSynced)
}

// NewPipelineError cria um novo erro de ingestão
func NewPipelineError(baseErr error, code, source, details string) *PipelineError {
	return &PipelineError{
		Err:     baseErr,
		Code:    code,
		Source:  source,
		Details: details,
	}
}
