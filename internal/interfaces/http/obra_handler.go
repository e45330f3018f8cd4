package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/usecase"
)

// ObraHandler trata as rotas de obras.
type ObraHandler struct {
	uc *usecase.ObraUseCase
}

// NewObraHandler constrói o handler.
func NewObraHandler(uc *usecase.ObraUseCase) *ObraHandler {
	return &ObraHandler{uc: uc}
}

// Create godoc
// @Summary      Criar obra
// @Tags         obras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateObraRequest  true  "Dados da obra"
// @Success      201   {object}  dto.ObraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/obras [post]
func (h *ObraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateObraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Usuario == "" {
		in.Usuario = GetUsuario(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar obras
// @Tags         obras
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ObraResponse
// @Router       /api/obras [get]
func (h *ObraHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter obra por ID
// @Tags         obras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da obra"
// @Success      200  {object}  dto.ObraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/obras/{id} [get]
func (h *ObraHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar obra
// @Tags         obras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da obra"
// @Param        body  body  dto.UpdateObraRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.ObraResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/obras/{id} [put]
func (h *ObraHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateObraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir obra
// @Tags         obras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da obra"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/obras/{id} [delete]
func (h *ObraHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Obra removida com sucesso"})
}
