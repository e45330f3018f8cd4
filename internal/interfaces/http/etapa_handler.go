package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/usecase"
)

// EtapaHandler trata as rotas da linha do tempo de etapas e da lixeira.
type EtapaHandler struct {
	uc *usecase.EtapaUseCase
}

// NewEtapaHandler constrói o handler.
func NewEtapaHandler(uc *usecase.EtapaUseCase) *EtapaHandler {
	return &EtapaHandler{uc: uc}
}

// Create godoc
// @Summary      Adicionar etapa à obra
// @Tags         etapas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        obraId  path  string  true  "ID da obra"
// @Param        body    body  dto.CreateEtapaRequest  true  "Dados da etapa"
// @Success      201     {object}  dto.EtapaResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/obras/{obraId}/etapas [post]
func (h *EtapaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEtapaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Params("obraId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar etapa
// @Tags         etapas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da etapa"
// @Param        body  body  dto.UpdateEtapaRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.EtapaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/etapas/{id} [put]
func (h *EtapaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEtapaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SoftDelete godoc
// @Summary      Enviar etapa para a lixeira
// @Tags         etapas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da etapa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id} [delete]
func (h *EtapaHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.Params("id"), GetUsuario(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Etapa movida para a lixeira"})
}

// Restaurar godoc
// @Summary      Restaurar etapa da lixeira
// @Tags         etapas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da etapa"
// @Success      200  {object}  dto.EtapaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id}/restaurar [post]
func (h *EtapaHandler) Restaurar(c *fiber.Ctx) error {
	out, err := h.uc.Restaurar(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeletePermanente godoc
// @Summary      Excluir etapa em definitivo
// @Tags         etapas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da etapa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id}/permanente [delete]
func (h *EtapaHandler) DeletePermanente(c *fiber.Ctx) error {
	if err := h.uc.DeletePermanente(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Etapa excluída em definitivo"})
}

// Lixeira godoc
// @Summary      Listar lixeira de etapas
// @Tags         etapas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LixeiraItemResponse
// @Router       /api/lixeira [get]
func (h *EtapaHandler) Lixeira(c *fiber.Ctx) error {
	out, err := h.uc.Lixeira()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LimparLixeira godoc
// @Summary      Esvaziar a lixeira
// @Tags         etapas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/lixeira [delete]
func (h *EtapaHandler) LimparLixeira(c *fiber.Ctx) error {
	removidas, err := h.uc.LimparLixeira()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Lixeira esvaziada: %d etapa(s) removida(s)", removidas)})
}
