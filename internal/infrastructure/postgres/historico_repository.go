package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

var _ repository.HistoricoRepository = (*HistoricoRepo)(nil)

const historicoColunas = `id, usuario, acao, entidade, entidade_id, descricao, detalhes, status, ip_address, user_agent, data_acao`

// HistoricoRepo persiste o histórico de acesso (trilha de auditoria).
type HistoricoRepo struct {
	q Querier
}

func NewHistoricoRepository(q Querier) *HistoricoRepo {
	return &HistoricoRepo{q: q}
}

func (r *HistoricoRepo) Create(registro *entity.HistoricoAcesso) error {
	query := `
		INSERT INTO historico_acesso (` + historicoColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		registro.ID, registro.Usuario, registro.Acao, registro.Entidade, registro.EntidadeID,
		registro.Descricao, registro.Detalhes, registro.Status, registro.IPAddress,
		registro.UserAgent, registro.DataAcao,
	)
	if err != nil {
		return fmt.Errorf("insert historico: %w", err)
	}
	return nil
}

// List retorna a página pedida e o total de registros que casam com o filtro.
func (r *HistoricoRepo) List(filtro repository.FiltroHistorico) ([]*entity.HistoricoAcesso, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filtro.Usuario != "" {
		args = append(args, "%"+filtro.Usuario+"%")
		where += fmt.Sprintf(` AND usuario ILIKE $%d`, len(args))
	}
	if filtro.Acao != "" {
		args = append(args, filtro.Acao)
		where += fmt.Sprintf(` AND acao = $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM historico_acesso`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count historico: %w", err)
	}

	args = append(args, filtro.Limit, filtro.Offset)
	query := `SELECT ` + historicoColunas + ` FROM historico_acesso` + where +
		fmt.Sprintf(` ORDER BY data_acao DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list historico: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoricoAcesso
	for rows.Next() {
		var h entity.HistoricoAcesso
		if err := rows.Scan(&h.ID, &h.Usuario, &h.Acao, &h.Entidade, &h.EntidadeID,
			&h.Descricao, &h.Detalhes, &h.Status, &h.IPAddress, &h.UserAgent, &h.DataAcao); err != nil {
			return nil, 0, fmt.Errorf("scan historico: %w", err)
		}
		list = append(list, &h)
	}
	return list, total, rows.Err()
}

func (r *HistoricoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM historico_acesso WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete historico: %w", err)
	}
	return nil
}

// DeleteAnterioresA apaga registros mais antigos que o limite e devolve
// quantos foram removidos.
func (r *HistoricoRepo) DeleteAnterioresA(limite time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM historico_acesso WHERE data_acao < $1`, limite)
	if err != nil {
		return 0, fmt.Errorf("limpar historico: %w", err)
	}
	return cmd.RowsAffected(), nil
}
