package repository

import "github.com/obratrack/obratrack-api/internal/domain/entity"

// ConfiguracaoRepository define a porta de persistência das configurações do sistema.
type ConfiguracaoRepository interface {
	Create(config *entity.Configuracao) error
	GetByID(id string) (*entity.Configuracao, error)
	GetByChave(chave string) (*entity.Configuracao, error)
	Update(config *entity.Configuracao) error
	List(categoria string) ([]*entity.Configuracao, error)
}
