package repository

import (
	"time"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
)

// ProdutoRepository define a porta de persistência para Produto (DIP).
// GetByIDForUpdate bloqueia a linha (SELECT FOR UPDATE) e só deve ser usado
// dentro de transação.
type ProdutoRepository interface {
	Create(produto *entity.Produto) error
	GetByID(id string) (*entity.Produto, error)
	GetByIDForUpdate(id string) (*entity.Produto, error)
	GetAtivoByCodigo(codigo string) (*entity.Produto, error)
	Update(produto *entity.Produto) error
	UpdateEstoque(id string, estoque int, quando time.Time) error
	ListAtivos() ([]*entity.Produto, error)
	Desativar(id string, quando time.Time) error
}
