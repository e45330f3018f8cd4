package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/obratrack/obratrack-api/internal/interfaces/http"
	pkgjwt "github.com/obratrack/obratrack-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsuario   = "admin"
	testTipo      = "Administrador"
	testIssuer    = "obratrack-test"
	testExpMin    = 60
)

// buildTestApp constrói uma aplicação Fiber mínima com o AuthMiddleware e um
// handler dummy que devolve os claims carregados nos locals.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"usuario": apphttp.GetUsuario(c),
				"tipo":    apphttp.GetTipo(c),
			})
		},
	)
	return app
}

// tokenFor gera um JWT válido para os testes.
func tokenFor(t *testing.T, usuario, tipo string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, usuario, tipo, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

// doRequest dispara um GET /protected e devolve a resposta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token válido → HTTP 200 e claims nos locals.
func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, testUsuario, testTipo))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUsuario, body["usuario"])
	assert.Equal(t, testTipo, body["tipo"])
}

// Caso 2: sem header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SemHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN",
		"a resposta deve indicar o código MISSING_TOKEN")
}

// Caso 3: header sem o prefixo Bearer → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 4: token malformado → HTTP 401.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token assinado com outro secret → HTTP 401.
func TestAuthMiddleware_SecretIncorreto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("outro-secret-completamente-diferente", testUsuario, testTipo, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests pkg jwt — integridade do generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUsuario, testTipo, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	usuario, tipo, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUsuario, usuario)
	assert.Equal(t, testTipo, tipo)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token com expiração -1 minuto (já expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUsuario, testTipo, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}
