package estoque

import (
	"context"

	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação, com repositórios atados à tx.
// Commit se fn retorna nil, Rollback caso contrário.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		produtoRepo repository.ProdutoRepository,
		movRepo repository.MovimentacaoRepository,
		historicoRepo repository.HistoricoRepository,
	) error) error
}
