package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/usecase"
)

// SistemaHandler trata configurações e histórico de acesso.
type SistemaHandler struct {
	configUC    *usecase.ConfiguracaoUseCase
	historicoUC *usecase.HistoricoUseCase
}

// NewSistemaHandler constrói o handler.
func NewSistemaHandler(configUC *usecase.ConfiguracaoUseCase, historicoUC *usecase.HistoricoUseCase) *SistemaHandler {
	return &SistemaHandler{configUC: configUC, historicoUC: historicoUC}
}

// ListConfiguracoes godoc
// @Summary      Listar configurações
// @Tags         sistema
// @Security     Bearer
// @Produce      json
// @Param        categoria  query  string  false  "Filtrar por categoria"
// @Success      200  {array}  dto.ConfiguracaoResponse
// @Router       /api/configuracoes [get]
func (h *SistemaHandler) ListConfiguracoes(c *fiber.Ctx) error {
	out, err := h.configUC.List(c.Query("categoria"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateConfiguracao godoc
// @Summary      Criar configuração
// @Tags         sistema
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConfiguracaoRequest  true  "Configuração"
// @Success      201   {object}  dto.ConfiguracaoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/configuracoes [post]
func (h *SistemaHandler) CreateConfiguracao(c *fiber.Ctx) error {
	var in dto.CreateConfiguracaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.configUC.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetConfiguracao godoc
// @Summary      Obter configuração por chave
// @Tags         sistema
// @Security     Bearer
// @Produce      json
// @Param        chave  path  string  true  "Chave"
// @Success      200  {object}  dto.ConfiguracaoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/configuracoes/{chave} [get]
func (h *SistemaHandler) GetConfiguracao(c *fiber.Ctx) error {
	out, err := h.configUC.GetByChave(c.Params("chave"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateConfiguracao godoc
// @Summary      Editar configuração
// @Tags         sistema
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da configuração"
// @Param        body  body  dto.UpdateConfiguracaoRequest  true  "Valor/descrição"
// @Success      200   {object}  dto.ConfiguracaoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/configuracoes/{id} [put]
func (h *SistemaHandler) UpdateConfiguracao(c *fiber.Ctx) error {
	var in dto.UpdateConfiguracaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.configUC.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListHistorico godoc
// @Summary      Listar histórico de acesso
// @Tags         sistema
// @Security     Bearer
// @Produce      json
// @Param        usuario   query  string  false  "Filtrar por usuário (substring)"
// @Param        acao      query  string  false  "Filtrar por ação"
// @Param        page      query  int     false  "Página"      default(1)
// @Param        per_page  query  int     false  "Por página"  default(50)
// @Success      200  {object}  dto.HistoricoListResponse
// @Router       /api/historico [get]
func (h *SistemaHandler) ListHistorico(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.historicoUC.List(c.Query("usuario"), c.Query("acao"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegistrarHistorico godoc
// @Summary      Registrar evento de auditoria
// @Tags         sistema
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHistoricoRequest  true  "Evento"
// @Success      201   {object}  dto.HistoricoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/historico [post]
func (h *SistemaHandler) RegistrarHistorico(c *fiber.Ctx) error {
	var in dto.CreateHistoricoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Usuario == "" {
		in.Usuario = GetUsuario(c)
	}
	out, err := h.historicoUC.Registrar(in, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteHistorico godoc
// @Summary      Excluir registro do histórico
// @Tags         sistema
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do registro"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/historico/{id} [delete]
func (h *SistemaHandler) DeleteHistorico(c *fiber.Ctx) error {
	if err := h.historicoUC.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Registro removido com sucesso"})
}

// LimparHistorico godoc
// @Summary      Limpar registros antigos do histórico
// @Tags         sistema
// @Security     Bearer
// @Produce      json
// @Param        dias  query  int  false  "Retenção em dias"  default(90)
// @Success      200  {object}  dto.LimparHistoricoResponse
// @Router       /api/historico/limpar [post]
func (h *SistemaHandler) LimparHistorico(c *fiber.Ctx) error {
	out, err := h.historicoUC.LimparAntigos(c.QueryInt("dias", 90))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
