package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/pkg/jwt"
)

// Locals keys do usuário autenticado no Fiber.
const (
	LocalUsuario = "usuario"
	LocalTipo    = "tipo"
)

// AuthMiddleware valida o Bearer Token JWT e coloca usuário e tipo em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		usuario, tipo, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUsuario, usuario)
		c.Locals(LocalTipo, tipo)
		return c.Next()
	}
}

// GetUsuario devolve o usuário do contexto (após o middleware de auth).
func GetUsuario(c *fiber.Ctx) string {
	v := c.Locals(LocalUsuario)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetTipo devolve o tipo do usuário do contexto.
func GetTipo(c *fiber.Ctx) string {
	v := c.Locals(LocalTipo)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
