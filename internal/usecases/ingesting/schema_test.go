package ingesting

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestResolveSchema(t *testing.T) {
	tests := []struct {
		name     string
		schema   sourceSchema
		header   []string
		validate func(t *testing.T, index columnIndex, err error)
	}{
		{
			name:   "cabeçalho Bionio completo com acentos",
			schema: bionioSchema,
			header: []string{"Número do Pedido", "Organização", "CNPJ da Organização", "Data da Criação do Pedido", "Valor Total do Pedido", "Status do Pedido"},
			validate: func(t *testing.T, index columnIndex, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, index[fieldRawID])
				assert.Equal(t, 2, index[fieldCNPJ])
				assert.Equal(t, 5, index[fieldStatus])
				assert.Equal(t, 1, index[fieldClientName])
			},
		},
		{
			name:   "alias alternativo sem acento",
			schema: bionioSchema,
			header: []string{"pedido", "cnpj", "data_do_pedido", "valor_total", "status"},
			validate: func(t *testing.T, index columnIndex, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, index[fieldRawID])
				assert.Equal(t, 4, index[fieldStatus])
			},
		},
		{
			name:   "coluna obrigatória ausente derruba a carga",
			schema: bionioSchema,
			header: []string{"pedido", "cnpj", "data_do_pedido", "valor_total"},
			validate: func(t *testing.T, index columnIndex, err error) {
				require.Error(t, err)
				assert.Nil(t, index)
				assert.True(t, errors.Is(err, ErrMissingColumn))

				var pipelineErr *PipelineError
				require.True(t, errors.As(err, &pipelineErr))
				assert.Equal(t, "VAL_004", pipelineErr.Code)
				assert.Contains(t, pipelineErr.Details, `campo "status"`)
			},
		},
		{
			name:   "coluna opcional ausente não derruba a carga",
			schema: rovemapaySchema,
			header: []string{"id_venda", "cnpj", "venda", "bruto", "liquido", "status"},
			validate: func(t *testing.T, index columnIndex, err error) {
				require.NoError(t, err)
				_, hasClientName := index[fieldClientName]
				assert.False(t, hasClientName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, err := tt.schema.resolve(tt.header, "BIONIO")
			tt.validate(t, index, err)
		})
	}
}

func TestColumnIndexValue(t *testing.T) {
	index := columnIndex{fieldRawID: 0, fieldStatus: 5}
	row := []string{" 123 ", "x"}

	assert.Equal(t, "123", index.value(row, fieldRawID))
	assert.Equal(t, "", index.value(row, fieldStatus), "posição além do fim da linha devolve vazio")
	assert.Equal(t, "", index.value(row, fieldCNPJ), "campo não mapeado devolve vazio")
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name     string
		content  func(t *testing.T) []byte
		validate func(t *testing.T, header []string, rows [][]string, err error)
	}{
		{
			name: "separador ponto e vírgula",
			content: func(t *testing.T) []byte {
				return []byte("pedido;status\n123;Transferido\n456;Cancelado\n")
			},
			validate: func(t *testing.T, header []string, rows [][]string, err error) {
				require.NoError(t, err)
				assert.Equal(t, []string{"pedido", "status"}, header)
				require.Len(t, rows, 2)
				assert.Equal(t, []string{"123", "Transferido"}, rows[0])
			},
		},
		{
			name: "separador vírgula",
			content: func(t *testing.T) []byte {
				return []byte("pedido,status\n123,Transferido\n")
			},
			validate: func(t *testing.T, header []string, rows [][]string, err error) {
				require.NoError(t, err)
				assert.Equal(t, []string{"pedido", "status"}, header)
				require.Len(t, rows, 1)
			},
		},
		{
			name: "arquivo em Latin-1 é decodificado",
			content: func(t *testing.T) []byte {
				encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("organização;status\nAção Ltda;Pago\n"))
				require.NoError(t, err)
				return encoded
			},
			validate: func(t *testing.T, header []string, rows [][]string, err error) {
				require.NoError(t, err)
				assert.Equal(t, []string{"organização", "status"}, header)
				require.Len(t, rows, 1)
				assert.Equal(t, "Ação Ltda", rows[0][0])
			},
		},
		{
			name: "arquivo vazio",
			content: func(t *testing.T) []byte {
				return []byte{}
			},
			validate: func(t *testing.T, header []string, rows [][]string, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrEmptyFile))
			},
		},
		{
			name: "aspas desbalanceadas",
			content: func(t *testing.T) []byte {
				return []byte("pedido;status\n\"123;Transferido\n")
			},
			validate: func(t *testing.T, header []string, rows [][]string, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedFile))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, rows, err := readCSV(strings.NewReader(string(tt.content(t))), "BIONIO")
			tt.validate(t, header, rows, err)
		})
	}
}

func TestDetectSeparator(t *testing.T) {
	assert.Equal(t, ';', detectSeparator([]byte("a;b;c\n1,5;2,5;3,5")))
	assert.Equal(t, ',', detectSeparator([]byte("a,b,c\n1,2,3")))
	assert.Equal(t, ';', detectSeparator([]byte("coluna_unica")), "sem separador assume o padrão brasileiro")
}
