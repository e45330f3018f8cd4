package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ObraUseCase casos de uso CRUD para obras. As respostas embutem as etapas
// não deletadas e o mobiliário da obra.
type ObraUseCase struct {
	repo          repository.ObraRepository
	etapaRepo     repository.EtapaRepository
	mobRepo       repository.MobiliarioRepository
	historicoRepo repository.HistoricoRepository
}

// NewObraUseCase constrói o caso de uso.
func NewObraUseCase(
	repo repository.ObraRepository,
	etapaRepo repository.EtapaRepository,
	mobRepo repository.MobiliarioRepository,
	historicoRepo repository.HistoricoRepository,
) *ObraUseCase {
	return &ObraUseCase{repo: repo, etapaRepo: etapaRepo, mobRepo: mobRepo, historicoRepo: historicoRepo}
}

// Create cria uma obra e registra o evento no histórico.
func (uc *ObraUseCase) Create(in dto.CreateObraRequest) (*dto.ObraResponse, error) {
	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Progresso < 0 || in.Progresso > 100 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	dataInicio := now
	if in.DataInicio != "" {
		d, err := time.Parse(dateLayout, in.DataInicio)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		dataInicio = d
	}
	status := in.Status
	if status == "" {
		status = "em_andamento"
	}
	obra := &entity.Obra{
		ID:              uuid.New().String(),
		Nome:            in.Nome,
		Localizacao:     in.Localizacao,
		Valor:           in.Valor,
		Status:          status,
		Progresso:       in.Progresso,
		DataInicio:      dataInicio,
		DataCriacao:     now,
		DataAtualizacao: now,
	}
	if err := uc.repo.Create(obra); err != nil {
		return nil, err
	}
	usuario := in.Usuario
	if usuario == "" {
		usuario = "Sistema"
	}
	// Auditoria best-effort: falha no histórico não desfaz a criação.
	_ = uc.historicoRepo.Create(&entity.HistoricoAcesso{
		ID:         uuid.New().String(),
		Usuario:    usuario,
		Acao:       "create",
		Entidade:   "obra",
		EntidadeID: obra.ID,
		Descricao:  fmt.Sprintf("Obra criada: %s", obra.Nome),
		Status:     entity.HistoricoSuccess,
		DataAcao:   now,
	})
	return dto.ToObraResponse(obra, nil, nil), nil
}

// GetByID obtém a obra com etapas ativas e mobiliário.
func (uc *ObraUseCase) GetByID(id string) (*dto.ObraResponse, error) {
	obra, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if obra == nil {
		return nil, domain.ErrNotFound
	}
	return uc.montarResponse(obra)
}

// Update edita os campos da obra (nil mantém o atual).
func (uc *ObraUseCase) Update(id string, in dto.UpdateObraRequest) (*dto.ObraResponse, error) {
	obra, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if obra == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nome != nil {
		obra.Nome = *in.Nome
	}
	if in.Localizacao != nil {
		obra.Localizacao = *in.Localizacao
	}
	if in.Valor != nil {
		obra.Valor = *in.Valor
	}
	if in.Status != nil {
		obra.Status = *in.Status
	}
	if in.Progresso != nil {
		if *in.Progresso < 0 || *in.Progresso > 100 {
			return nil, domain.ErrInvalidInput
		}
		obra.Progresso = *in.Progresso
	}
	if in.DataInicio != nil {
		d, err := time.Parse(dateLayout, *in.DataInicio)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		obra.DataInicio = d
	}
	obra.DataAtualizacao = time.Now()
	if err := uc.repo.Update(obra); err != nil {
		return nil, err
	}
	return uc.montarResponse(obra)
}

// Delete remove a obra e tudo que depende dela (cascata no banco).
func (uc *ObraUseCase) Delete(id string) error {
	obra, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if obra == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista todas as obras, cada uma com etapas e mobiliário embutidos.
func (uc *ObraUseCase) List() ([]dto.ObraResponse, error) {
	obras, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ObraResponse, 0, len(obras))
	for _, obra := range obras {
		resp, err := uc.montarResponse(obra)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (uc *ObraUseCase) montarResponse(obra *entity.Obra) (*dto.ObraResponse, error) {
	etapas, err := uc.etapaRepo.ListByObra(obra.ID, false)
	if err != nil {
		return nil, err
	}
	mobiliario, err := uc.mobRepo.ListByObra(obra.ID)
	if err != nil {
		return nil, err
	}
	return dto.ToObraResponse(obra, etapas, mobiliario), nil
}
