package repository

import "github.com/obratrack/obratrack-api/internal/domain/entity"

// MobiliarioRepository define a porta de persistência para Mobiliario.
type MobiliarioRepository interface {
	Create(mob *entity.Mobiliario) error
	GetByID(id string) (*entity.Mobiliario, error)
	Delete(id string) error
	ListByObra(obraID string) ([]*entity.Mobiliario, error)
}
