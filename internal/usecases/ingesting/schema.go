package ingesting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rovema/bi-comercial-api/pkg/apiErrors"
	"github.com/rovema/bi-comercial-api/pkg/normalize"
	"golang.org/x/text/encoding/charmap"
)

// Campos canônicos extraídos de cada origem
const (
	fieldRawID      = "raw_id"
	fieldCNPJ       = "cnpj"
	fieldClientName = "client_name"
	fieldDate       = "date"
	fieldGross      = "gross"
	fieldNet        = "net"
	fieldStatus     = "status"
	fieldDetail     = "detail"
)

// sourceSchema descreve o contrato de colunas de uma origem: para cada
// campo canônico, os nomes de coluna aceitos em ordem de preferência.
// Os nomes mudam entre exportações das plataformas; a tabela de aliases
// absorve as variações conhecidas em vez de adivinhar por posição.
type sourceSchema struct {
	required map[string][]string
	optional map[string][]string
}

var bionioSchema = sourceSchema{
	required: map[string][]string{
		fieldRawID:  {"número_do_pedido", "numero_do_pedido", "pedido"},
		fieldCNPJ:   {"cnpj_da_organização", "cnpj_da_organizacao", "cnpj"},
		fieldDate:   {"data_da_criação_do_pedido", "data_da_criacao_do_pedido", "data_do_pedido"},
		fieldGross:  {"valor_total_do_pedido", "valor_total"},
		fieldStatus: {"status_do_pedido", "status"},
	},
	optional: map[string][]string{
		fieldClientName: {"organização", "organizacao"},
	},
}

var rovemapaySchema = sourceSchema{
	required: map[string][]string{
		fieldRawID:  {"id_venda", "id"},
		fieldCNPJ:   {"cnpj"},
		fieldDate:   {"venda", "data_venda"},
		fieldGross:  {"bruto", "valor_bruto"},
		fieldNet:    {"liquido", "líquido", "valor_liquido"},
		fieldStatus: {"status"},
	},
	optional: map[string][]string{
		fieldClientName: {"ec", "estabelecimento"},
		fieldDetail:     {"bandeira"},
	},
}

// columnIndex mapeia campo canônico -> posição da coluna no arquivo
type columnIndex map[string]int

// resolve valida o cabeçalho contra o contrato da origem antes de qualquer
// linha ser processada. Coluna obrigatória ausente derruba a carga inteira
// na hora, com o nome do campo no erro.
func (s sourceSchema) resolve(header []string, source string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, col := range header {
		positions[normalize.NormalizeHeader(col)] = i
	}

	index := make(columnIndex)

	for field, aliases := range s.required {
		found := false
		for _, alias := range aliases {
			if pos, ok := positions[alias]; ok {
				index[field] = pos
				found = true
				break
			}
		}
		if !found {
			return nil, NewPipelineError(
				ErrMissingColumn,
				apiErrors.ErrMissingColumn,
				source,
				fmt.Sprintf("campo %q não encontrado (aliases aceitos: %s)", field, strings.Join(aliases, ", ")),
			)
		}
	}

	for field, aliases := range s.optional {
		for _, alias := range aliases {
			if pos, ok := positions[alias]; ok {
				index[field] = pos
				break
			}
		}
	}

	return index, nil
}

// value lê um campo canônico de uma linha; vazio quando a coluna não existe
func (idx columnIndex) value(row []string, field string) string {
	pos, ok := idx[field]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// readCSV lê um arquivo de exportação completo: detecta Latin-1 (padrão
// das exportações brasileiras antigas), aceita ponto e vírgula ou vírgula
// como separador e devolve cabeçalho e linhas.
func readCSV(r io.Reader, source string) ([]string, [][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, NewPipelineError(ErrMalformedFile, apiErrors.ErrMissingRequiredData, source, err.Error())
	}

	if len(raw) == 0 {
		return nil, nil, NewPipelineError(ErrEmptyFile, apiErrors.ErrMissingRequiredData, source, "arquivo sem conteúdo")
	}

	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, nil, NewPipelineError(ErrMalformedFile, apiErrors.ErrMissingRequiredData, source, "codificação não reconhecida")
		}
		raw = decoded
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = detectSeparator(raw)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, NewPipelineError(ErrMalformedFile, apiErrors.ErrMissingRequiredData, source, err.Error())
	}

	if len(records) == 0 {
		return nil, nil, NewPipelineError(ErrEmptyFile, apiErrors.ErrMissingRequiredData, source, "arquivo sem cabeçalho")
	}

	return records[0], records[1:], nil
}

// detectSeparator olha a primeira linha: exportações brasileiras usam ';',
// mas as plataformas ocasionalmente trocam para ','
func detectSeparator(raw []byte) rune {
	firstLine := string(raw)
	if i := strings.IndexByte(firstLine, '\n'); i > 0 {
		firstLine = firstLine[:i]
	}

	if strings.Count(firstLine, ";") >= strings.Count(firstLine, ",") {
		return ';'
	}
	return ','
}
