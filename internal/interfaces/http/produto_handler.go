package http

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/estoque"
	"github.com/obratrack/obratrack-api/internal/application/importacao"
	"github.com/obratrack/obratrack-api/internal/application/usecase"
)

// ProdutoHandler trata as rotas de produtos, movimentações e importação.
type ProdutoHandler struct {
	uc          *usecase.ProdutoUseCase
	estoqueUC   *estoque.UseCase
	importUC    *importacao.UseCase
	maxUploadMB int
}

// NewProdutoHandler constrói o handler.
func NewProdutoHandler(uc *usecase.ProdutoUseCase, estoqueUC *estoque.UseCase, importUC *importacao.UseCase, maxUploadMB int) *ProdutoHandler {
	return &ProdutoHandler{uc: uc, estoqueUC: estoqueUC, importUC: importUC, maxUploadMB: maxUploadMB}
}

// Create godoc
// @Summary      Criar produto
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProdutoRequest  true  "Dados do produto"
// @Success      201   {object}  dto.ProdutoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produtos [post]
func (h *ProdutoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProdutoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Usuario == "" {
		in.Usuario = GetUsuario(c)
	}
	out, err := h.estoqueUC.CriarProduto(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar produtos ativos
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProdutoResponse
// @Router       /api/produtos [get]
func (h *ProdutoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter produto por ID
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {object}  dto.ProdutoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [get]
func (h *ProdutoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar produto
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.UpdateProdutoRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.ProdutoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [put]
func (h *ProdutoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProdutoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Usuario == "" {
		in.Usuario = GetUsuario(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desativar produto (exclusão lógica)
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [delete]
func (h *ProdutoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Desativar(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Produto removido com sucesso"})
}

// Dispensar godoc
// @Summary      Dispensar estoque para uso em obra
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.DispensarRequest  true  "Quantidade e destino"
// @Success      200   {object}  dto.DispensarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id}/dispensar [post]
func (h *ProdutoHandler) Dispensar(c *fiber.Ctx) error {
	var in dto.DispensarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.estoqueUC.Dispensar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movimentacoes godoc
// @Summary      Listar movimentações de estoque
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        produto_id  query  string  false  "Filtrar por produto"
// @Success      200  {array}  dto.MovimentacaoResponse
// @Router       /api/movimentacoes [get]
func (h *ProdutoHandler) Movimentacoes(c *fiber.Ctx) error {
	out, err := h.estoqueUC.Movimentacoes(c.Query("produto_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MovimentacoesProduto godoc
// @Summary      Listar movimentações de um produto
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {array}  dto.MovimentacaoResponse
// @Router       /api/produtos/{id}/movimentacoes [get]
func (h *ProdutoHandler) MovimentacoesProduto(c *fiber.Ctx) error {
	out, err := h.estoqueUC.Movimentacoes(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Importar godoc
// @Summary      Importar produtos de planilha (CSV/Excel)
// @Tags         produtos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file                 formData  file  true   "Planilha"
// @Param        validar_duplicatas   formData  bool  false  "Rejeitar códigos já cadastrados"
// @Param        validar_precos       formData  bool  false  "Exigir preço > 0"
// @Param        validar_estoque      formData  bool  false  "Exigir estoque >= 0"
// @Param        atualizar_existente  formData  bool  false  "Atualizar produtos existentes"
// @Success      200  {object}  dto.ImportacaoResponse
// @Failure      400  {object}  dto.ImportacaoErroResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/produtos/importar [post]
func (h *ProdutoHandler) Importar(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ImportacaoErroResponse{Error: "Nenhum arquivo enviado"})
	}
	if h.maxUploadMB > 0 && fh.Size > int64(h.maxUploadMB)<<20 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ImportacaoErroResponse{
			Error: fmt.Sprintf("Arquivo excede o limite de %d MB", h.maxUploadMB),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ImportacaoErroResponse{Error: "Não foi possível ler o arquivo"})
	}
	defer f.Close()
	conteudo, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ImportacaoErroResponse{Error: "Não foi possível ler o arquivo"})
	}

	opts := dto.OpcoesImportacao{
		ValidarDuplicatas:  formBool(c, "validar_duplicatas", true),
		ValidarPrecos:      formBool(c, "validar_precos", true),
		ValidarEstoque:     formBool(c, "validar_estoque", true),
		AtualizarExistente: formBool(c, "atualizar_existente", false),
	}

	out, err := h.importUC.Importar(c.Context(), conteudo, fh.Filename, opts)
	if err != nil {
		return respondImportError(c, err)
	}
	return c.JSON(out)
}

// respondImportError mapeia os erros do pipeline de importação para os corpos
// específicos que o frontend consome.
func respondImportError(c *fiber.Ctx, err error) error {
	var errParse *importacao.ErroParse
	if errors.As(err, &errParse) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ImportacaoErroResponse{Error: errParse.Motivo})
	}
	var errColunas *importacao.ErroColunas
	if errors.As(err, &errColunas) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ImportacaoErroResponse{
			Error:           "Colunas obrigatórias não encontradas",
			RequiredColumns: errColunas.Obrigatorias,
			FoundColumns:    errColunas.Encontradas,
		})
	}
	var errValidacao *importacao.ErroValidacao
	if errors.As(err, &errValidacao) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ImportacaoErroResponse{
			Error:   "Planilha contém erros de validação",
			Details: errValidacao.Linhas,
		})
	}
	var errAplicacao *importacao.ErroAplicacao
	if errors.As(err, &errAplicacao) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   fmt.Sprintf("Falha ao aplicar a linha %d", errAplicacao.Linha),
			"parcial": errAplicacao.Parcial,
		})
	}
	return respondError(c, err)
}

// Relatorio godoc
// @Summary      Relatório de estoque em PDF
// @Tags         produtos
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/produtos/relatorio [get]
func (h *ProdutoHandler) Relatorio(c *fiber.Ctx) error {
	pdf, err := h.uc.RelatorioEstoque(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="relatorio-estoque-%s.pdf"`, time.Now().Format("2006-01-02")))
	return c.Send(pdf)
}

// Foto godoc
// @Summary      Atualizar foto do produto
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Success      200   {object}  dto.ProdutoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id}/foto [put]
func (h *ProdutoHandler) Foto(c *fiber.Ctx) error {
	var in struct {
		Foto string `json:"foto"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.AtualizarFoto(c.Params("id"), in.Foto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// formBool lê um campo booleano de multipart form, com padrão.
func formBool(c *fiber.Ctx, key string, def bool) bool {
	switch c.FormValue(key) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return def
	}
}
