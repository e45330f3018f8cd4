package repository

import "github.com/obratrack/obratrack-api/internal/domain/entity"

// MovimentacaoRepository define a porta de persistência do razão de estoque.
// Registros são imutáveis: só há Create e leituras, sempre ordenadas da
// movimentação mais recente para a mais antiga.
type MovimentacaoRepository interface {
	Create(mov *entity.Movimentacao) error
	ListAll() ([]*entity.Movimentacao, error)
	ListByProduto(produtoID string) ([]*entity.Movimentacao, error)
}
