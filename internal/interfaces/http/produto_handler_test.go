package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/importacao"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
	"github.com/obratrack/obratrack-api/internal/infrastructure/tabular"
	apphttp "github.com/obratrack/obratrack-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs: os cenários abaixo falham na validação, antes de tocar o banco
// ──────────────────────────────────────────────────────────────────────────────

type stubProdutoRepo struct{}

func (stubProdutoRepo) Create(*entity.Produto) error                     { return nil }
func (stubProdutoRepo) GetByID(string) (*entity.Produto, error)          { return nil, nil }
func (stubProdutoRepo) GetByIDForUpdate(string) (*entity.Produto, error) { return nil, nil }
func (stubProdutoRepo) GetAtivoByCodigo(string) (*entity.Produto, error) { return nil, nil }
func (stubProdutoRepo) Update(*entity.Produto) error                     { return nil }
func (stubProdutoRepo) UpdateEstoque(string, int, time.Time) error       { return nil }
func (stubProdutoRepo) ListAtivos() ([]*entity.Produto, error)           { return nil, nil }
func (stubProdutoRepo) Desativar(string, time.Time) error                { return nil }

type stubTxRunner struct{}

func (stubTxRunner) Run(context.Context, func(
	repository.ProdutoRepository,
	repository.MovimentacaoRepository,
	repository.HistoricoRepository,
) error) error {
	return nil
}

func buildImportApp() *fiber.App {
	importUC := importacao.NewUseCase(tabular.NewOpener(true), stubTxRunner{}, stubProdutoRepo{})
	handler := apphttp.NewProdutoHandler(nil, nil, importUC, 10)

	app := fiber.New()
	app.Post("/api/produtos/importar", handler.Importar)
	return app
}

func uploadPlanilha(t *testing.T, app *fiber.App, nome, conteudo string) (*http.Response, dto.ImportacaoErroResponse) {
	t.Helper()

	var corpo bytes.Buffer
	mw := multipart.NewWriter(&corpo)
	fw, err := mw.CreateFormFile("file", nome)
	require.NoError(t, err)
	_, err = fw.Write([]byte(conteudo))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/produtos/importar", &corpo)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ImportacaoErroResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Corpos de erro da importação
// ──────────────────────────────────────────────────────────────────────────────

// Erros de validação chegam ao cliente em "details", linha a linha.
func TestImportar_ErroDeValidacao_PreencheDetails(t *testing.T) {
	app := buildImportApp()

	csv := "nome;categoria;codigo;estoque;estoque_minimo;preco\n" +
		";Cimento;CIM-001;150;10;32.50\n"
	resp, out := uploadPlanilha(t, app, "produtos.csv", csv)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Planilha contém erros de validação", out.Error)
	require.Len(t, out.Details, 1)
	assert.Equal(t, 2, out.Details[0].Linha)
	assert.Contains(t, out.Details[0].Erros, "Nome é obrigatório")
	assert.Empty(t, out.RequiredColumns)
}

func TestImportar_ColunasFaltando_ReportaCabecalho(t *testing.T) {
	app := buildImportApp()

	resp, out := uploadPlanilha(t, app, "produtos.csv", "nome;codigo\nCimento;CIM-001\n")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Colunas obrigatórias não encontradas", out.Error)
	assert.Equal(t, importacao.ColunasObrigatorias, out.RequiredColumns)
	assert.ElementsMatch(t, []string{"nome", "codigo"}, out.FoundColumns)
	assert.Empty(t, out.Details)
}

func TestImportar_ArquivoIlegivel_ReportaErroDeParse(t *testing.T) {
	app := buildImportApp()

	resp, out := uploadPlanilha(t, app, "produtos.csv", "nome\nCimento\n")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out.Error, "interpretar")
	assert.Empty(t, out.Details)
}
