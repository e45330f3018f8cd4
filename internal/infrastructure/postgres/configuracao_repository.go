package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

var _ repository.ConfiguracaoRepository = (*ConfiguracaoRepo)(nil)

const configuracaoColunas = `id, chave, valor, tipo, descricao, categoria, editavel, data_criacao, data_atualizacao`

// ConfiguracaoRepo persiste as configurações chave/valor do sistema.
type ConfiguracaoRepo struct {
	q Querier
}

func NewConfiguracaoRepository(q Querier) *ConfiguracaoRepo {
	return &ConfiguracaoRepo{q: q}
}

func (r *ConfiguracaoRepo) Create(config *entity.Configuracao) error {
	query := `
		INSERT INTO configuracoes (` + configuracaoColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		config.ID, config.Chave, config.Valor, config.Tipo, config.Descricao,
		config.Categoria, config.Editavel, config.DataCriacao, config.DataAtualizacao,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert configuracao: %w", err)
	}
	return nil
}

func (r *ConfiguracaoRepo) GetByID(id string) (*entity.Configuracao, error) {
	return r.umPor(`SELECT `+configuracaoColunas+` FROM configuracoes WHERE id = $1`, id)
}

func (r *ConfiguracaoRepo) GetByChave(chave string) (*entity.Configuracao, error) {
	return r.umPor(`SELECT `+configuracaoColunas+` FROM configuracoes WHERE chave = $1`, chave)
}

func (r *ConfiguracaoRepo) umPor(query string, arg any) (*entity.Configuracao, error) {
	var c entity.Configuracao
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Chave, &c.Valor, &c.Tipo, &c.Descricao, &c.Categoria,
		&c.Editavel, &c.DataCriacao, &c.DataAtualizacao,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get configuracao: %w", err)
	}
	return &c, nil
}

func (r *ConfiguracaoRepo) Update(config *entity.Configuracao) error {
	query := `
		UPDATE configuracoes
		SET valor = $2, descricao = $3, data_atualizacao = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		config.ID, config.Valor, config.Descricao, config.DataAtualizacao,
	)
	if err != nil {
		return fmt.Errorf("update configuracao: %w", err)
	}
	return nil
}

// List lista as configurações, opcionalmente filtradas por categoria.
func (r *ConfiguracaoRepo) List(categoria string) ([]*entity.Configuracao, error) {
	query := `SELECT ` + configuracaoColunas + ` FROM configuracoes`
	args := []any{}
	if categoria != "" {
		query += ` WHERE categoria = $1`
		args = append(args, categoria)
	}
	query += ` ORDER BY categoria, chave`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list configuracoes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Configuracao
	for rows.Next() {
		var c entity.Configuracao
		if err := rows.Scan(&c.ID, &c.Chave, &c.Valor, &c.Tipo, &c.Descricao, &c.Categoria,
			&c.Editavel, &c.DataCriacao, &c.DataAtualizacao); err != nil {
			return nil, fmt.Errorf("scan configuracao: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
