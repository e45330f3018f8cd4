package tabular

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/obratrack/obratrack-api/internal/application/importacao"
)

var delimitadores = []rune{';', ',', '\t'}

// tabela é o resultado já materializado de um parse: cabeçalho normalizado em
// minúsculas e cada linha como mapa coluna→valor.
type tabela struct {
	headers []string
	rows    []map[string]string
}

func (t *tabela) Headers() []string         { return t.headers }
func (t *tabela) Rows() []map[string]string { return t.rows }

// abrirCSV decodifica o arquivo (UTF-8 com ou sem BOM, senão Windows-1252,
// que cobre ISO-8859-1 nas exportações em português) e detecta o delimitador
// tentando ';', ',' e tab, na ordem: vence o primeiro que produz mais de uma
// coluna no cabeçalho.
func abrirCSV(conteudo []byte) (importacao.RowSource, error) {
	texto, err := decodificar(conteudo)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(texto) == "" {
		return nil, &importacao.ErroParse{Motivo: "Arquivo CSV está vazio"}
	}

	for _, delim := range delimitadores {
		t, err := parseCSV(texto, delim)
		if err != nil {
			continue
		}
		if len(t.headers) > 1 {
			return t, nil
		}
	}
	// Cabeçalho de uma coluna só significa que nenhum delimitador serviu.
	return nil, &importacao.ErroParse{Motivo: "Não foi possível interpretar o arquivo CSV"}
}

func decodificar(conteudo []byte) (string, error) {
	conteudo = bytes.TrimPrefix(conteudo, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(conteudo) {
		return string(conteudo), nil
	}
	decodificado, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), conteudo)
	if err != nil {
		return "", &importacao.ErroParse{Motivo: "Não foi possível decodificar o arquivo CSV"}
	}
	return string(decodificado), nil
}

func parseCSV(texto string, delim rune) (*tabela, error) {
	r := csv.NewReader(strings.NewReader(texto))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	registros, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(registros) == 0 {
		return nil, &importacao.ErroParse{Motivo: "Arquivo CSV está vazio"}
	}
	return montarTabela(registros), nil
}

// montarTabela normaliza o cabeçalho (minúsculas, sem espaços nas pontas).
// Linhas só de delimitadores (";;;;;") viram linhas de dados vazias: a
// validação as rejeita campo a campo, e a numeração física das linhas
// seguintes não desloca.
func montarTabela(registros [][]string) *tabela {
	headers := make([]string, len(registros[0]))
	for i, h := range registros[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	t := &tabela{headers: headers}
	for _, registro := range registros[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(registro) {
				row[h] = strings.TrimSpace(registro[i])
			} else {
				row[h] = ""
			}
		}
		t.rows = append(t.rows, row)
	}
	return t
}
