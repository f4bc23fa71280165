// Package normalize concentra a limpeza de valores vindos de planilhas e
// APIs de parceiros: números em formato brasileiro, CNPJs degradados por
// editores de planilha e datas em formatos mistos.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Pontos agrupando dígitos de três em três sem vírgula: "1.234", "1.234.567"
var thousandsOnlyPattern = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// CleanValue converte um valor monetário textual em float64.
// Aceita formato brasileiro ("1.234,56"), prefixo de moeda ("R$ 10,00") e
// números já em formato de API ("1234.56"). Sem vírgula, ponto agrupando
// dígitos de três em três é separador de milhar ("1.234" é 1234, não
// 1.234): as planilhas omitem as casas decimais em valores redondos.
// Qualquer entrada que não possa ser interpretada vira 0.0: linha ruim
// não derruba a carga, vira contagem de descarte no chamador.
func CleanValue(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	if strings.Contains(s, ",") {
		// Formato brasileiro: ponto é separador de milhar, vírgula é decimal
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if thousandsOnlyPattern.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if negative {
		return -v
	}
	return v
}

// CleanCNPJ normaliza um CNPJ para 14 dígitos.
// Recupera valores degradados em notação científica por planilhas
// ("1.2345678e+13") via reconversão numérica, remove máscara e completa
// zeros à esquerda. Retorna false quando a entrada não rende um CNPJ
// plausível (vazia ou com mais de 14 dígitos).
func CleanCNPJ(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if strings.ContainsAny(s, "eE") {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
			s = strconv.FormatFloat(f, 'f', 0, 64)
		}
	}

	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if d == "" || len(d) > 14 {
		return "", false
	}

	return strings.Repeat("0", 14-len(d)) + d, true
}

var dateLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate interpreta datas nos formatos usados pelas origens
// (dd/mm/yyyy nas planilhas, ISO nas APIs)
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}

// NormalizeHeader padroniza um nome de coluna de planilha: minúsculas,
// espaços viram underscore, espaços extras removidos
func NormalizeHeader(col string) string {
	h := strings.ToLower(strings.TrimSpace(col))
	h = strings.Join(strings.Fields(h), "_")
	return h
}
