package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obratrack/obratrack-api/internal/application/estoque"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

var _ estoque.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia a transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	produtoRepo repository.ProdutoRepository,
	movRepo repository.MovimentacaoRepository,
	historicoRepo repository.HistoricoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	produtoRepo := NewProdutoRepository(tx)
	movRepo := NewMovimentacaoRepository(tx)
	historicoRepo := NewHistoricoRepository(tx)

	if err := fn(produtoRepo, movRepo, historicoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
