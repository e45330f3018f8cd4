package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

var _ repository.MovimentacaoRepository = (*MovimentacaoRepo)(nil)

const movimentacaoColunas = `id, produto_id, tipo, quantidade, quantidade_anterior, quantidade_atual, motivo, observacoes, usuario, data_movimentacao`

// MovimentacaoRepo persiste o razão de movimentações (insert-only).
type MovimentacaoRepo struct {
	q Querier
}

// NewMovimentacaoRepository constrói o adaptador de persistência de movimentações.
func NewMovimentacaoRepository(q Querier) *MovimentacaoRepo {
	return &MovimentacaoRepo{q: q}
}

// Create registra uma movimentação. Não há update nem delete: o razão é imutável.
func (r *MovimentacaoRepo) Create(mov *entity.Movimentacao) error {
	query := `
		INSERT INTO movimentacoes (` + movimentacaoColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.ProdutoID, mov.Tipo, mov.Quantidade, mov.QuantidadeAnterior,
		mov.QuantidadeAtual, mov.Motivo, mov.Observacoes, mov.Usuario, mov.DataMovimentacao,
	)
	if err != nil {
		return fmt.Errorf("insert movimentacao: %w", err)
	}
	return nil
}

// ListAll lista todas as movimentações, da mais recente à mais antiga.
func (r *MovimentacaoRepo) ListAll() ([]*entity.Movimentacao, error) {
	return r.listar(`SELECT ` + movimentacaoColunas + ` FROM movimentacoes ORDER BY data_movimentacao DESC`)
}

// ListByProduto lista as movimentações de um produto, da mais recente à mais antiga.
func (r *MovimentacaoRepo) ListByProduto(produtoID string) ([]*entity.Movimentacao, error) {
	return r.listar(`SELECT `+movimentacaoColunas+` FROM movimentacoes WHERE produto_id = $1 ORDER BY data_movimentacao DESC`, produtoID)
}

func (r *MovimentacaoRepo) listar(query string, args ...any) ([]*entity.Movimentacao, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimentacoes: %w", err)
	}
	defer rows.Close()
	return scanMovimentacoes(rows)
}

func scanMovimentacoes(rows pgx.Rows) ([]*entity.Movimentacao, error) {
	var list []*entity.Movimentacao
	for rows.Next() {
		var m entity.Movimentacao
		if err := rows.Scan(&m.ID, &m.ProdutoID, &m.Tipo, &m.Quantidade, &m.QuantidadeAnterior,
			&m.QuantidadeAtual, &m.Motivo, &m.Observacoes, &m.Usuario, &m.DataMovimentacao); err != nil {
			return nil, fmt.Errorf("scan movimentacao: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
