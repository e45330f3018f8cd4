package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// EtapaUseCase casos de uso da linha do tempo de etapas. Exclusão é em dois
// passos: soft delete manda para a lixeira; de lá a etapa pode ser restaurada
// ou removida em definitivo.
type EtapaUseCase struct {
	repo        repository.EtapaRepository
	lixeiraRepo repository.LixeiraRepository
	obraRepo    repository.ObraRepository
}

// NewEtapaUseCase constrói o caso de uso.
func NewEtapaUseCase(repo repository.EtapaRepository, lixeiraRepo repository.LixeiraRepository, obraRepo repository.ObraRepository) *EtapaUseCase {
	return &EtapaUseCase{repo: repo, lixeiraRepo: lixeiraRepo, obraRepo: obraRepo}
}

// Create adiciona uma etapa à obra.
func (uc *EtapaUseCase) Create(obraID string, in dto.CreateEtapaRequest) (*dto.EtapaResponse, error) {
	if in.Titulo == "" {
		return nil, domain.ErrInvalidInput
	}
	obra, err := uc.obraRepo.GetByID(obraID)
	if err != nil {
		return nil, err
	}
	if obra == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	dataEtapa := now
	if in.DataEtapa != "" {
		d, err := time.Parse(dateLayout, in.DataEtapa)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		dataEtapa = d
	}
	fotos := in.Fotos
	if len(fotos) == 0 || !json.Valid(fotos) {
		fotos = json.RawMessage("[]")
	}
	etapa := &entity.Etapa{
		ID:              uuid.New().String(),
		ObraID:          obraID,
		Titulo:          in.Titulo,
		Descricao:       in.Descricao,
		DataEtapa:       dataEtapa,
		Fotos:           fotos,
		DataCriacao:     now,
		DataAtualizacao: now,
	}
	if err := uc.repo.Create(etapa); err != nil {
		return nil, err
	}
	return dto.ToEtapaResponse(etapa), nil
}

// Update edita uma etapa não deletada.
func (uc *EtapaUseCase) Update(id string, in dto.UpdateEtapaRequest) (*dto.EtapaResponse, error) {
	etapa, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if etapa == nil || etapa.Deletado {
		return nil, domain.ErrNotFound
	}
	if in.Titulo != nil {
		etapa.Titulo = *in.Titulo
	}
	if in.Descricao != nil {
		etapa.Descricao = *in.Descricao
	}
	if in.DataEtapa != nil {
		d, err := time.Parse(dateLayout, *in.DataEtapa)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		etapa.DataEtapa = d
	}
	if len(in.Fotos) > 0 {
		if !json.Valid(in.Fotos) {
			return nil, domain.ErrInvalidInput
		}
		etapa.Fotos = in.Fotos
	}
	etapa.DataAtualizacao = time.Now()
	if err := uc.repo.Update(etapa); err != nil {
		return nil, err
	}
	return dto.ToEtapaResponse(etapa), nil
}

// SoftDelete marca a etapa como deletada e cria a entrada na lixeira.
// Deletar uma etapa já deletada é conflito.
func (uc *EtapaUseCase) SoftDelete(id, usuario string) error {
	etapa, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if etapa == nil {
		return domain.ErrNotFound
	}
	if etapa.Deletado {
		return domain.ErrConflict
	}
	now := time.Now()
	if err := uc.repo.SetDeletado(id, true, &now); err != nil {
		return err
	}
	if usuario == "" {
		usuario = "Sistema"
	}
	return uc.lixeiraRepo.Create(&entity.LixeiraItem{
		ID:              uuid.New().String(),
		EtapaID:         id,
		DataExclusao:    now,
		UsuarioExclusao: usuario,
	})
}

// Restaurar tira a etapa da lixeira e a devolve à linha do tempo.
func (uc *EtapaUseCase) Restaurar(id string) (*dto.EtapaResponse, error) {
	etapa, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if etapa == nil {
		return nil, domain.ErrNotFound
	}
	if !etapa.Deletado {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.SetDeletado(id, false, nil); err != nil {
		return nil, err
	}
	if err := uc.lixeiraRepo.DeleteByEtapa(id); err != nil {
		return nil, err
	}
	etapa.Deletado = false
	etapa.DataExclusao = nil
	return dto.ToEtapaResponse(etapa), nil
}

// DeletePermanente remove fisicamente uma etapa que está na lixeira.
func (uc *EtapaUseCase) DeletePermanente(id string) error {
	etapa, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if etapa == nil {
		return domain.ErrNotFound
	}
	if !etapa.Deletado {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// Lixeira lista os itens da lixeira com a etapa embutida.
func (uc *EtapaUseCase) Lixeira() ([]dto.LixeiraItemResponse, error) {
	items, err := uc.lixeiraRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LixeiraItemResponse, 0, len(items))
	for _, item := range items {
		etapa, err := uc.repo.GetByID(item.EtapaID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.LixeiraItemResponse{
			ID:              item.ID,
			EtapaID:         item.EtapaID,
			DataExclusao:    item.DataExclusao,
			UsuarioExclusao: item.UsuarioExclusao,
			Etapa:           dto.ToEtapaResponse(etapa),
		})
	}
	return out, nil
}

// LimparLixeira remove em definitivo todas as etapas da lixeira e devolve
// quantas foram apagadas.
func (uc *EtapaUseCase) LimparLixeira() (int, error) {
	items, err := uc.lixeiraRepo.List()
	if err != nil {
		return 0, err
	}
	removidas := 0
	for _, item := range items {
		if err := uc.repo.Delete(item.EtapaID); err != nil {
			return removidas, err
		}
		removidas++
	}
	return removidas, nil
}
