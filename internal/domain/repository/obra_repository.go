package repository

import "github.com/obratrack/obratrack-api/internal/domain/entity"

// ObraRepository define a porta de persistência para Obra.
type ObraRepository interface {
	Create(obra *entity.Obra) error
	GetByID(id string) (*entity.Obra, error)
	Update(obra *entity.Obra) error
	Delete(id string) error
	List() ([]*entity.Obra, error)
}
