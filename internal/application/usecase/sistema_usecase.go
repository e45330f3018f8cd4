package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// ConfiguracaoUseCase casos de uso das configurações chave/valor do sistema.
// Configurações com Editavel=false só podem ser lidas.
type ConfiguracaoUseCase struct {
	repo repository.ConfiguracaoRepository
}

// NewConfiguracaoUseCase constrói o caso de uso.
func NewConfiguracaoUseCase(repo repository.ConfiguracaoRepository) *ConfiguracaoUseCase {
	return &ConfiguracaoUseCase{repo: repo}
}

// Create registra uma nova configuração. Chave repetida retorna ErrDuplicate.
func (uc *ConfiguracaoUseCase) Create(in dto.CreateConfiguracaoRequest) (*dto.ConfiguracaoResponse, error) {
	chave := strings.TrimSpace(in.Chave)
	if chave == "" {
		return nil, domain.ErrInvalidInput
	}
	tipo := in.Tipo
	if tipo == "" {
		tipo = entity.ConfigString
	}
	switch tipo {
	case entity.ConfigString, entity.ConfigNumber, entity.ConfigBoolean, entity.ConfigJSON:
	default:
		return nil, domain.ErrInvalidInput
	}
	categoria := in.Categoria
	if categoria == "" {
		categoria = "geral"
	}
	editavel := true
	if in.Editavel != nil {
		editavel = *in.Editavel
	}
	now := time.Now()
	config := &entity.Configuracao{
		ID:              uuid.New().String(),
		Chave:           chave,
		Valor:           valorComoTexto(in.Valor),
		Tipo:            tipo,
		Descricao:       in.Descricao,
		Categoria:       categoria,
		Editavel:        editavel,
		DataCriacao:     now,
		DataAtualizacao: now,
	}
	if err := uc.repo.Create(config); err != nil {
		return nil, err
	}
	return dto.ToConfiguracaoResponse(config), nil
}

// GetByChave obtém uma configuração pela chave.
func (uc *ConfiguracaoUseCase) GetByChave(chave string) (*dto.ConfiguracaoResponse, error) {
	config, err := uc.repo.GetByChave(chave)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToConfiguracaoResponse(config), nil
}

// Update altera valor/descrição. Configuração não editável retorna ErrForbidden.
func (uc *ConfiguracaoUseCase) Update(id string, in dto.UpdateConfiguracaoRequest) (*dto.ConfiguracaoResponse, error) {
	config, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, domain.ErrNotFound
	}
	if !config.Editavel {
		return nil, domain.ErrForbidden
	}
	if len(in.Valor) > 0 {
		config.Valor = valorComoTexto(in.Valor)
	}
	if in.Descricao != nil {
		config.Descricao = *in.Descricao
	}
	config.DataAtualizacao = time.Now()
	if err := uc.repo.Update(config); err != nil {
		return nil, err
	}
	return dto.ToConfiguracaoResponse(config), nil
}

// List lista as configurações, opcionalmente por categoria.
func (uc *ConfiguracaoUseCase) List(categoria string) ([]dto.ConfiguracaoResponse, error) {
	list, err := uc.repo.List(categoria)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConfiguracaoResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *dto.ToConfiguracaoResponse(c))
	}
	return out, nil
}

// valorComoTexto normaliza o valor recebido (string, número, bool ou objeto
// JSON) para a representação textual persistida.
func valorComoTexto(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// HistoricoUseCase casos de uso da trilha de auditoria.
type HistoricoUseCase struct {
	repo repository.HistoricoRepository
}

// NewHistoricoUseCase constrói o caso de uso.
func NewHistoricoUseCase(repo repository.HistoricoRepository) *HistoricoUseCase {
	return &HistoricoUseCase{repo: repo}
}

// Registrar grava um evento de auditoria vindo do cliente.
func (uc *HistoricoUseCase) Registrar(in dto.CreateHistoricoRequest, ip, userAgent string) (*dto.HistoricoResponse, error) {
	if in.Usuario == "" || in.Acao == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.HistoricoInfo
	}
	registro := &entity.HistoricoAcesso{
		ID:         uuid.New().String(),
		Usuario:    in.Usuario,
		Acao:       in.Acao,
		Entidade:   in.Entidade,
		EntidadeID: in.EntidadeID,
		Descricao:  in.Descricao,
		Detalhes:   in.Detalhes,
		Status:     status,
		IPAddress:  ip,
		UserAgent:  userAgent,
		DataAcao:   time.Now(),
	}
	if err := uc.repo.Create(registro); err != nil {
		return nil, err
	}
	return dto.ToHistoricoResponse(registro, time.Now()), nil
}

// List lista registros paginados, filtráveis por usuário (substring) e ação.
func (uc *HistoricoUseCase) List(usuario, acao string, page dto.PageRequest) (*dto.HistoricoListResponse, error) {
	page.DefaultPage(50)
	registros, total, err := uc.repo.List(repository.FiltroHistorico{
		Usuario: usuario,
		Acao:    acao,
		Limit:   page.PerPage,
		Offset:  page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	agora := time.Now()
	items := make([]dto.HistoricoResponse, 0, len(registros))
	for _, r := range registros {
		items = append(items, *dto.ToHistoricoResponse(r, agora))
	}
	return &dto.HistoricoListResponse{
		Items:        items,
		PageResponse: dto.NewPageResponse(total, page),
	}, nil
}

// Delete remove um registro específico.
func (uc *HistoricoUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// LimparAntigos apaga registros mais velhos que o período de retenção.
func (uc *HistoricoUseCase) LimparAntigos(retencaoDias int) (*dto.LimparHistoricoResponse, error) {
	if retencaoDias <= 0 {
		return nil, domain.ErrInvalidInput
	}
	limite := time.Now().AddDate(0, 0, -retencaoDias)
	deletados, err := uc.repo.DeleteAnterioresA(limite)
	if err != nil {
		return nil, err
	}
	return &dto.LimparHistoricoResponse{
		Message:            fmt.Sprintf("Histórico anterior a %d dias removido", retencaoDias),
		RegistrosDeletados: deletados,
	}, nil
}
