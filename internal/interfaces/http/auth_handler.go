package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obratrack/obratrack-api/internal/application/auth"
	"github.com/obratrack/obratrack-api/internal/application/dto"
)

// AuthHandler trata o login (público).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login do administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciais"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Login(in, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
