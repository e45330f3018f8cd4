package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

var _ repository.MobiliarioRepository = (*MobiliarioRepo)(nil)

// MobiliarioRepo implementação do porto MobiliarioRepository sobre PostgreSQL.
type MobiliarioRepo struct {
	q Querier
}

func NewMobiliarioRepository(q Querier) *MobiliarioRepo {
	return &MobiliarioRepo{q: q}
}

func (r *MobiliarioRepo) Create(mob *entity.Mobiliario) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO mobiliario (id, obra_id, tipo, comodo, status, posicao_x, posicao_y, data_criacao)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		mob.ID, mob.ObraID, mob.Tipo, mob.Comodo, mob.Status, mob.PosicaoX, mob.PosicaoY, mob.DataCriacao,
	)
	if err != nil {
		return fmt.Errorf("insert mobiliario: %w", err)
	}
	return nil
}

func (r *MobiliarioRepo) GetByID(id string) (*entity.Mobiliario, error) {
	var m entity.Mobiliario
	err := r.q.QueryRow(context.Background(),
		`SELECT id, obra_id, tipo, comodo, status, posicao_x, posicao_y, data_criacao
		 FROM mobiliario WHERE id = $1`, id).Scan(
		&m.ID, &m.ObraID, &m.Tipo, &m.Comodo, &m.Status, &m.PosicaoX, &m.PosicaoY, &m.DataCriacao,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mobiliario: %w", err)
	}
	return &m, nil
}

func (r *MobiliarioRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM mobiliario WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete mobiliario: %w", err)
	}
	return nil
}

func (r *MobiliarioRepo) ListByObra(obraID string) ([]*entity.Mobiliario, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, obra_id, tipo, comodo, status, posicao_x, posicao_y, data_criacao
		 FROM mobiliario WHERE obra_id = $1 ORDER BY data_criacao ASC`, obraID)
	if err != nil {
		return nil, fmt.Errorf("list mobiliario: %w", err)
	}
	defer rows.Close()
	var list []*entity.Mobiliario
	for rows.Next() {
		var m entity.Mobiliario
		if err := rows.Scan(&m.ID, &m.ObraID, &m.Tipo, &m.Comodo, &m.Status,
			&m.PosicaoX, &m.PosicaoY, &m.DataCriacao); err != nil {
			return nil, fmt.Errorf("scan mobiliario: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
