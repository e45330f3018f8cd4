package repository

import (
	"time"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
)

// EtapaRepository define a porta de persistência para Etapa.
// SetDeletado implementa o soft delete; Delete remove fisicamente.
type EtapaRepository interface {
	Create(etapa *entity.Etapa) error
	GetByID(id string) (*entity.Etapa, error)
	Update(etapa *entity.Etapa) error
	SetDeletado(id string, deletado bool, quando *time.Time) error
	Delete(id string) error
	ListByObra(obraID string, incluirDeletadas bool) ([]*entity.Etapa, error)
}

// LixeiraRepository define a porta da lixeira de etapas.
type LixeiraRepository interface {
	Create(item *entity.LixeiraItem) error
	DeleteByEtapa(etapaID string) error
	List() ([]*entity.LixeiraItem, error)
}
