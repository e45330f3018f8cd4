package tabular_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/obratrack/obratrack-api/internal/application/importacao"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/infrastructure/tabular"
)

// ──────────────────────────────────────────────────────────────────────────────
// CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestOpenCSV_PontoEVirgula(t *testing.T) {
	src, err := tabular.NewOpener(true).Open(
		[]byte("Nome;Categoria;Codigo\nCimento;Cimento;CIM-001\n"), "produtos.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"nome", "categoria", "codigo"}, src.Headers(),
		"cabeçalho deve ser normalizado em minúsculas")
	require.Len(t, src.Rows(), 1)
	assert.Equal(t, "Cimento", src.Rows()[0]["nome"])
	assert.Equal(t, "CIM-001", src.Rows()[0]["codigo"])
}

func TestOpenCSV_DetectaDelimitador(t *testing.T) {
	casos := map[string]string{
		"vírgula": "nome,codigo\nCimento,CIM-001\n",
		"tab":     "nome\tcodigo\nCimento\tCIM-001\n",
	}
	for nome, conteudo := range casos {
		src, err := tabular.NewOpener(true).Open([]byte(conteudo), "produtos.csv")
		require.NoError(t, err, nome)
		assert.Equal(t, []string{"nome", "codigo"}, src.Headers(), nome)
	}
}

// Campos com aspas e vírgula embutida dentro de um arquivo ';'.
func TestOpenCSV_AspasEVirgulaEmbutida(t *testing.T) {
	src, err := tabular.NewOpener(true).Open(
		[]byte("nome;descricao\nCimento;\"Saco de 50kg, uso geral\"\n"), "produtos.csv")
	require.NoError(t, err)
	assert.Equal(t, "Saco de 50kg, uso geral", src.Rows()[0]["descricao"])
}

func TestOpenCSV_Latin1(t *testing.T) {
	src, err := tabular.NewOpener(true).Open(
		[]byte("nome;categoria\nA\xe7o CA-50;Arma\xe7\xe3o\n"), "produtos.csv")
	require.NoError(t, err)
	assert.Equal(t, "Aço CA-50", src.Rows()[0]["nome"])
	assert.Equal(t, "Armação", src.Rows()[0]["categoria"])
}

// Linhas totalmente em branco não são registros; já uma linha só de
// delimitadores (";") vira uma linha de dados vazia, na posição em que está.
func TestOpenCSV_LinhaSoDeDelimitadores(t *testing.T) {
	src, err := tabular.NewOpener(true).Open(
		[]byte("nome;codigo\nCimento;CIM-001\n;\n\nAreia;ARE-002\n"), "produtos.csv")
	require.NoError(t, err)
	require.Len(t, src.Rows(), 3)
	assert.Equal(t, "", src.Rows()[1]["nome"], "linha ';' vira registro vazio")
	assert.Equal(t, "", src.Rows()[1]["codigo"])
	assert.Equal(t, "Areia", src.Rows()[2]["nome"], "posição preservada")
}

// Nenhum delimitador produz mais de uma coluna: arquivo ilegível, não um
// cabeçalho de uma coluna só.
func TestOpenCSV_SemDelimitador(t *testing.T) {
	_, err := tabular.NewOpener(true).Open([]byte("nome\nCimento\n"), "produtos.csv")
	var ep *importacao.ErroParse
	require.ErrorAs(t, err, &ep)
	assert.Contains(t, ep.Motivo, "interpretar")
}

// Linha mais curta que o cabeçalho: células ausentes viram string vazia.
func TestOpenCSV_LinhaCurta(t *testing.T) {
	src, err := tabular.NewOpener(true).Open(
		[]byte("nome;codigo;descricao\nCimento;CIM-001\n"), "produtos.csv")
	require.NoError(t, err)
	assert.Equal(t, "", src.Rows()[0]["descricao"])
}

func TestOpenCSV_Vazio(t *testing.T) {
	_, err := tabular.NewOpener(true).Open([]byte("   \n"), "produtos.csv")
	var ep *importacao.ErroParse
	require.ErrorAs(t, err, &ep)
	assert.Contains(t, ep.Motivo, "vazio")
}

// ──────────────────────────────────────────────────────────────────────────────
// Excel
// ──────────────────────────────────────────────────────────────────────────────

// xlsxBytes monta uma pasta de trabalho em memória.
func xlsxBytes(t *testing.T, registros [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, registro := range registros {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &registro))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestOpenXLSX_PrimeiraAba(t *testing.T) {
	conteudo := xlsxBytes(t, [][]any{
		{"Nome", "Codigo", "Estoque"},
		{"Cimento CP-II", "CIM-001", 150},
		{"Areia média", "ARE-002", 80},
	})

	src, err := tabular.NewOpener(true).Open(conteudo, "produtos.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"nome", "codigo", "estoque"}, src.Headers())
	require.Len(t, src.Rows(), 2)
	assert.Equal(t, "Cimento CP-II", src.Rows()[0]["nome"])
	assert.Equal(t, "150", src.Rows()[0]["estoque"], "células numéricas chegam como texto")
	assert.Equal(t, "Areia média", src.Rows()[1]["nome"])
}

func TestOpenXLSX_Desabilitado(t *testing.T) {
	conteudo := xlsxBytes(t, [][]any{{"nome"}, {"Cimento"}})

	_, err := tabular.NewOpener(false).Open(conteudo, "produtos.xlsx")
	assert.ErrorIs(t, err, domain.ErrCapabilityUnavailable)
}

func TestOpenXLSX_Corrompido(t *testing.T) {
	_, err := tabular.NewOpener(true).Open([]byte("isto não é um zip"), "produtos.xlsx")
	var ep *importacao.ErroParse
	require.ErrorAs(t, err, &ep)
	assert.Contains(t, ep.Motivo, "Excel")
}

// ──────────────────────────────────────────────────────────────────────────────
// Extensões
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_ExtensaoNaoSuportada(t *testing.T) {
	_, err := tabular.NewOpener(true).Open([]byte("dados"), "produtos.txt")
	var ep *importacao.ErroParse
	require.ErrorAs(t, err, &ep)
	assert.Contains(t, ep.Motivo, "suportados")
}
