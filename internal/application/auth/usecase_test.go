package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/obratrack/obratrack-api/internal/application/auth"
	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
	pkgjwt "github.com/obratrack/obratrack-api/pkg/jwt"
)

type fakeHistoricoRepo struct {
	registros []*entity.HistoricoAcesso
}

func (r *fakeHistoricoRepo) Create(h *entity.HistoricoAcesso) error {
	r.registros = append(r.registros, h)
	return nil
}

func (r *fakeHistoricoRepo) List(repository.FiltroHistorico) ([]*entity.HistoricoAcesso, int, error) {
	return r.registros, len(r.registros), nil
}

func (r *fakeHistoricoRepo) Delete(string) error                        { return nil }
func (r *fakeHistoricoRepo) DeleteAnterioresA(time.Time) (int64, error) { return 0, nil }

const (
	loginSecret = "segredo-de-teste"
	loginSenha  = "obra123"
)

func buildAuth(t *testing.T) (*auth.UseCase, *fakeHistoricoRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(loginSenha), bcrypt.MinCost)
	require.NoError(t, err)
	historicoRepo := &fakeHistoricoRepo{}
	uc := auth.NewUseCase(historicoRepo, auth.JWTConfig{
		Secret:     loginSecret,
		ExpMinutes: 60,
		Issuer:     "obratrack-test",
	}, auth.AdminConfig{Usuario: "admin", Hash: string(hash)})
	return uc, historicoRepo
}

func TestLogin_Sucesso(t *testing.T) {
	uc, historicoRepo := buildAuth(t)

	out, err := uc.Login(dto.LoginRequest{Nome: "admin", Senha: loginSenha}, "10.0.0.5", "test-agent")
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "Login realizado com sucesso", out.Message)
	require.NotNil(t, out.Usuario)
	assert.Equal(t, auth.TipoAdministrador, out.Usuario.Tipo)

	usuario, tipo, err := pkgjwt.Parse(loginSecret, out.Token)
	require.NoError(t, err, "o token emitido deve ser verificável com o mesmo secret")
	assert.Equal(t, "admin", usuario)
	assert.Equal(t, auth.TipoAdministrador, tipo)

	// A tentativa fica na trilha de auditoria, com IP e user agent.
	require.Len(t, historicoRepo.registros, 1)
	registro := historicoRepo.registros[0]
	assert.Equal(t, "login", registro.Acao)
	assert.Equal(t, entity.HistoricoSuccess, registro.Status)
	assert.Equal(t, "10.0.0.5", registro.IPAddress)
	assert.Equal(t, "test-agent", registro.UserAgent)
}

func TestLogin_SenhaErrada(t *testing.T) {
	uc, historicoRepo := buildAuth(t)

	_, err := uc.Login(dto.LoginRequest{Nome: "admin", Senha: "errada"}, "10.0.0.5", "test-agent")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.Len(t, historicoRepo.registros, 1, "a falha também deve ser auditada")
	assert.Equal(t, "login_failed", historicoRepo.registros[0].Acao)
	assert.Equal(t, entity.HistoricoError, historicoRepo.registros[0].Status)
}

func TestLogin_UsuarioDesconhecido(t *testing.T) {
	uc, _ := buildAuth(t)

	_, err := uc.Login(dto.LoginRequest{Nome: "intruso", Senha: loginSenha}, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CamposVazios(t *testing.T) {
	uc, historicoRepo := buildAuth(t)

	_, err := uc.Login(dto.LoginRequest{}, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, historicoRepo.registros, "request malformado não chega à auditoria")
}
