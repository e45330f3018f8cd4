package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
	"github.com/obratrack/obratrack-api/pkg/jwt"
)

// TipoAdministrador é o único perfil com credencial; o sistema é single-user.
const TipoAdministrador = "Administrador"

// JWTConfig configuração da geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminConfig credencial do administrador vinda do ambiente. Hash é bcrypt.
type AdminConfig struct {
	Usuario string
	Hash    string
}

// UseCase caso de uso de autenticação. Cada tentativa, bem ou mal sucedida,
// vira um registro no histórico de acesso.
type UseCase struct {
	historicoRepo repository.HistoricoRepository
	jwtCfg        JWTConfig
	admin         AdminConfig
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(historicoRepo repository.HistoricoRepository, jwtCfg JWTConfig, admin AdminConfig) *UseCase {
	return &UseCase{historicoRepo: historicoRepo, jwtCfg: jwtCfg, admin: admin}
}

// Login valida nome/senha contra a credencial do administrador e emite o JWT.
func (uc *UseCase) Login(in dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	if in.Nome == "" || in.Senha == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Nome != uc.admin.Usuario ||
		bcrypt.CompareHashAndPassword([]byte(uc.admin.Hash), []byte(in.Senha)) != nil {
		uc.auditar(in.Nome, "login_failed", "Tentativa de login inválida", entity.HistoricoError, ip, userAgent)
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, in.Nome, TipoAdministrador, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.auditar(in.Nome, "login", fmt.Sprintf("Login realizado: %s", in.Nome), entity.HistoricoSuccess, ip, userAgent)
	return &dto.LoginResponse{
		Success: true,
		Message: "Login realizado com sucesso",
		Token:   token,
		Usuario: &dto.UsuarioInfo{Nome: in.Nome, Tipo: TipoAdministrador},
	}, nil
}

// auditar registra a tentativa de login; falha na auditoria não bloqueia o fluxo.
func (uc *UseCase) auditar(usuario, acao, descricao, status, ip, userAgent string) {
	_ = uc.historicoRepo.Create(&entity.HistoricoAcesso{
		ID:        uuid.New().String(),
		Usuario:   usuario,
		Acao:      acao,
		Entidade:  "auth",
		Descricao: descricao,
		Status:    status,
		IPAddress: ip,
		UserAgent: userAgent,
		DataAcao:  time.Now(),
	})
}
