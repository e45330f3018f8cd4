package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/usecase"
)

// MobiliarioHandler trata as rotas de mobiliário da planta.
type MobiliarioHandler struct {
	uc *usecase.MobiliarioUseCase
}

// NewMobiliarioHandler constrói o handler.
func NewMobiliarioHandler(uc *usecase.MobiliarioUseCase) *MobiliarioHandler {
	return &MobiliarioHandler{uc: uc}
}

// Create godoc
// @Summary      Posicionar mobiliário na obra
// @Tags         mobiliario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        obraId  path  string  true  "ID da obra"
// @Param        body    body  dto.CreateMobiliarioRequest  true  "Item de mobiliário"
// @Success      201     {object}  dto.MobiliarioResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/obras/{obraId}/mobiliario [post]
func (h *MobiliarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMobiliarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Params("obraId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByObra godoc
// @Summary      Listar mobiliário da obra
// @Tags         mobiliario
// @Security     Bearer
// @Produce      json
// @Param        obraId  path  string  true  "ID da obra"
// @Success      200     {array}  dto.MobiliarioResponse
// @Router       /api/obras/{obraId}/mobiliario [get]
func (h *MobiliarioHandler) ListByObra(c *fiber.Ctx) error {
	out, err := h.uc.ListByObra(c.Params("obraId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover item de mobiliário
// @Tags         mobiliario
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do item"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mobiliario/{id} [delete]
func (h *MobiliarioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Mobiliário removido com sucesso"})
}
