package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

var _ repository.ObraRepository = (*ObraRepo)(nil)

const obraColunas = `id, nome, localizacao, valor, status, progresso, data_inicio, data_criacao, data_atualizacao`

// ObraRepo implementação do porto ObraRepository sobre PostgreSQL.
type ObraRepo struct {
	q Querier
}

func NewObraRepository(q Querier) *ObraRepo {
	return &ObraRepo{q: q}
}

func (r *ObraRepo) Create(obra *entity.Obra) error {
	query := `
		INSERT INTO obras (` + obraColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		obra.ID, obra.Nome, obra.Localizacao, obra.Valor, obra.Status,
		obra.Progresso, obra.DataInicio, obra.DataCriacao, obra.DataAtualizacao,
	)
	if err != nil {
		return fmt.Errorf("insert obra: %w", err)
	}
	return nil
}

func (r *ObraRepo) GetByID(id string) (*entity.Obra, error) {
	var o entity.Obra
	err := r.q.QueryRow(context.Background(),
		`SELECT `+obraColunas+` FROM obras WHERE id = $1`, id).Scan(
		&o.ID, &o.Nome, &o.Localizacao, &o.Valor, &o.Status,
		&o.Progresso, &o.DataInicio, &o.DataCriacao, &o.DataAtualizacao,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get obra: %w", err)
	}
	return &o, nil
}

func (r *ObraRepo) Update(obra *entity.Obra) error {
	query := `
		UPDATE obras
		SET nome = $2, localizacao = $3, valor = $4, status = $5, progresso = $6,
		    data_inicio = $7, data_atualizacao = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		obra.ID, obra.Nome, obra.Localizacao, obra.Valor, obra.Status,
		obra.Progresso, obra.DataInicio, obra.DataAtualizacao,
	)
	if err != nil {
		return fmt.Errorf("update obra: %w", err)
	}
	return nil
}

// Delete remove a obra; etapas e mobiliário caem em cascata (FK ON DELETE CASCADE).
func (r *ObraRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM obras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete obra: %w", err)
	}
	return nil
}

func (r *ObraRepo) List() ([]*entity.Obra, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+obraColunas+` FROM obras ORDER BY data_criacao DESC`)
	if err != nil {
		return nil, fmt.Errorf("list obras: %w", err)
	}
	defer rows.Close()
	var list []*entity.Obra
	for rows.Next() {
		var o entity.Obra
		if err := rows.Scan(&o.ID, &o.Nome, &o.Localizacao, &o.Valor, &o.Status,
			&o.Progresso, &o.DataInicio, &o.DataCriacao, &o.DataAtualizacao); err != nil {
			return nil, fmt.Errorf("scan obra: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
