package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// MobiliarioUseCase casos de uso do mobiliário posicionado na planta da obra.
type MobiliarioUseCase struct {
	repo     repository.MobiliarioRepository
	obraRepo repository.ObraRepository
}

// NewMobiliarioUseCase constrói o caso de uso.
func NewMobiliarioUseCase(repo repository.MobiliarioRepository, obraRepo repository.ObraRepository) *MobiliarioUseCase {
	return &MobiliarioUseCase{repo: repo, obraRepo: obraRepo}
}

// Create posiciona um item de mobiliário na obra.
func (uc *MobiliarioUseCase) Create(obraID string, in dto.CreateMobiliarioRequest) (*dto.MobiliarioResponse, error) {
	if in.Type == "" || in.Room == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.MobiliarioExistente
	}
	if status != entity.MobiliarioExistente && status != entity.MobiliarioNovo {
		return nil, domain.ErrInvalidInput
	}
	obra, err := uc.obraRepo.GetByID(obraID)
	if err != nil {
		return nil, err
	}
	if obra == nil {
		return nil, domain.ErrNotFound
	}
	mob := &entity.Mobiliario{
		ID:          uuid.New().String(),
		ObraID:      obraID,
		Tipo:        in.Type,
		Comodo:      in.Room,
		Status:      status,
		PosicaoX:    in.X,
		PosicaoY:    in.Y,
		DataCriacao: time.Now(),
	}
	if err := uc.repo.Create(mob); err != nil {
		return nil, err
	}
	return dto.ToMobiliarioResponse(mob), nil
}

// Delete remove um item de mobiliário.
func (uc *MobiliarioUseCase) Delete(id string) error {
	mob, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if mob == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// ListByObra lista o mobiliário de uma obra.
func (uc *MobiliarioUseCase) ListByObra(obraID string) ([]dto.MobiliarioResponse, error) {
	list, err := uc.repo.ListByObra(obraID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MobiliarioResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *dto.ToMobiliarioResponse(m))
	}
	return out, nil
}
