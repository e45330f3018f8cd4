package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

var _ repository.EtapaRepository = (*EtapaRepo)(nil)
var _ repository.LixeiraRepository = (*LixeiraRepo)(nil)

const etapaColunas = `id, obra_id, titulo, descricao, data_etapa, fotos, deletado, data_exclusao, data_criacao, data_atualizacao`

// EtapaRepo implementação do porto EtapaRepository sobre PostgreSQL.
type EtapaRepo struct {
	q Querier
}

func NewEtapaRepository(q Querier) *EtapaRepo {
	return &EtapaRepo{q: q}
}

func (r *EtapaRepo) Create(etapa *entity.Etapa) error {
	query := `
		INSERT INTO etapas (` + etapaColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		etapa.ID, etapa.ObraID, etapa.Titulo, etapa.Descricao, etapa.DataEtapa,
		etapa.Fotos, etapa.Deletado, etapa.DataExclusao, etapa.DataCriacao, etapa.DataAtualizacao,
	)
	if err != nil {
		return fmt.Errorf("insert etapa: %w", err)
	}
	return nil
}

func (r *EtapaRepo) GetByID(id string) (*entity.Etapa, error) {
	var e entity.Etapa
	err := r.q.QueryRow(context.Background(),
		`SELECT `+etapaColunas+` FROM etapas WHERE id = $1`, id).Scan(
		&e.ID, &e.ObraID, &e.Titulo, &e.Descricao, &e.DataEtapa,
		&e.Fotos, &e.Deletado, &e.DataExclusao, &e.DataCriacao, &e.DataAtualizacao,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get etapa: %w", err)
	}
	return &e, nil
}

func (r *EtapaRepo) Update(etapa *entity.Etapa) error {
	query := `
		UPDATE etapas
		SET titulo = $2, descricao = $3, data_etapa = $4, fotos = $5, data_atualizacao = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		etapa.ID, etapa.Titulo, etapa.Descricao, etapa.DataEtapa, etapa.Fotos, etapa.DataAtualizacao,
	)
	if err != nil {
		return fmt.Errorf("update etapa: %w", err)
	}
	return nil
}

// SetDeletado liga/desliga o soft delete. quando nil limpa data_exclusao (restauração).
func (r *EtapaRepo) SetDeletado(id string, deletado bool, quando *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE etapas SET deletado = $2, data_exclusao = $3, data_atualizacao = now() WHERE id = $1`,
		id, deletado, quando,
	)
	if err != nil {
		return fmt.Errorf("set deletado etapa: %w", err)
	}
	return nil
}

// Delete remove fisicamente. O item correspondente na lixeira cai em cascata.
func (r *EtapaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM etapas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete etapa: %w", err)
	}
	return nil
}

func (r *EtapaRepo) ListByObra(obraID string, incluirDeletadas bool) ([]*entity.Etapa, error) {
	query := `SELECT ` + etapaColunas + ` FROM etapas WHERE obra_id = $1`
	if !incluirDeletadas {
		query += ` AND deletado = FALSE`
	}
	query += ` ORDER BY data_etapa ASC`
	rows, err := r.q.Query(context.Background(), query, obraID)
	if err != nil {
		return nil, fmt.Errorf("list etapas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Etapa
	for rows.Next() {
		var e entity.Etapa
		if err := rows.Scan(&e.ID, &e.ObraID, &e.Titulo, &e.Descricao, &e.DataEtapa,
			&e.Fotos, &e.Deletado, &e.DataExclusao, &e.DataCriacao, &e.DataAtualizacao); err != nil {
			return nil, fmt.Errorf("scan etapa: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// LixeiraRepo persiste as referências de etapas excluídas logicamente.
type LixeiraRepo struct {
	q Querier
}

func NewLixeiraRepository(q Querier) *LixeiraRepo {
	return &LixeiraRepo{q: q}
}

func (r *LixeiraRepo) Create(item *entity.LixeiraItem) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO lixeira_etapas (id, etapa_id, data_exclusao, usuario_exclusao) VALUES ($1, $2, $3, $4)`,
		item.ID, item.EtapaID, item.DataExclusao, item.UsuarioExclusao,
	)
	if err != nil {
		return fmt.Errorf("insert lixeira: %w", err)
	}
	return nil
}

func (r *LixeiraRepo) DeleteByEtapa(etapaID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM lixeira_etapas WHERE etapa_id = $1`, etapaID)
	if err != nil {
		return fmt.Errorf("delete lixeira: %w", err)
	}
	return nil
}

func (r *LixeiraRepo) List() ([]*entity.LixeiraItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, etapa_id, data_exclusao, usuario_exclusao FROM lixeira_etapas ORDER BY data_exclusao DESC`)
	if err != nil {
		return nil, fmt.Errorf("list lixeira: %w", err)
	}
	defer rows.Close()
	var list []*entity.LixeiraItem
	for rows.Next() {
		var item entity.LixeiraItem
		if err := rows.Scan(&item.ID, &item.EtapaID, &item.DataExclusao, &item.UsuarioExclusao); err != nil {
			return nil, fmt.Errorf("scan lixeira: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
