package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

const produtoColunas = `id, nome, categoria, codigo, estoque, estoque_minimo, preco, unidade, descricao, foto, ativo, data_criacao, data_atualizacao`

// ProdutoRepo implementação do porto ProdutoRepository sobre PostgreSQL
// (usável com pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador de persistência de produtos.
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

// Create persiste um novo produto. A constraint única parcial sobre codigo
// (entre ativos) vira domain.ErrDuplicate.
func (r *ProdutoRepo) Create(produto *entity.Produto) error {
	query := `
		INSERT INTO produtos (` + produtoColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		produto.ID, produto.Nome, produto.Categoria, produto.Codigo,
		produto.Estoque, produto.EstoqueMinimo, produto.Preco, produto.Unidade,
		produto.Descricao, produto.Foto, produto.Ativo, produto.DataCriacao, produto.DataAtualizacao,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID. Retorna nil sem erro quando não existe.
func (r *ProdutoRepo) GetByID(id string) (*entity.Produto, error) {
	return r.umPor(`SELECT `+produtoColunas+` FROM produtos WHERE id = $1`, id)
}

// GetByIDForUpdate obtém o produto bloqueando a linha (SELECT FOR UPDATE).
// Só faz sentido dentro de transação.
func (r *ProdutoRepo) GetByIDForUpdate(id string) (*entity.Produto, error) {
	return r.umPor(`SELECT `+produtoColunas+` FROM produtos WHERE id = $1 FOR UPDATE`, id)
}

// GetAtivoByCodigo obtém o produto ativo com o código dado.
func (r *ProdutoRepo) GetAtivoByCodigo(codigo string) (*entity.Produto, error) {
	return r.umPor(`SELECT `+produtoColunas+` FROM produtos WHERE codigo = $1 AND ativo = TRUE`, codigo)
}

func (r *ProdutoRepo) umPor(query string, arg any) (*entity.Produto, error) {
	var p entity.Produto
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Nome, &p.Categoria, &p.Codigo, &p.Estoque, &p.EstoqueMinimo,
		&p.Preco, &p.Unidade, &p.Descricao, &p.Foto, &p.Ativo, &p.DataCriacao, &p.DataAtualizacao,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return &p, nil
}

// Update atualiza os campos mutáveis do produto. Estoque não entra aqui: só
// muda via UpdateEstoque, acompanhado de movimentação.
func (r *ProdutoRepo) Update(produto *entity.Produto) error {
	query := `
		UPDATE produtos
		SET nome = $2, categoria = $3, codigo = $4, estoque_minimo = $5, preco = $6,
		    unidade = $7, descricao = $8, foto = $9, data_atualizacao = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		produto.ID, produto.Nome, produto.Categoria, produto.Codigo,
		produto.EstoqueMinimo, produto.Preco, produto.Unidade, produto.Descricao,
		produto.Foto, produto.DataAtualizacao,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update produto: %w", err)
	}
	return nil
}

// UpdateEstoque atualiza somente a quantidade em estoque.
func (r *ProdutoRepo) UpdateEstoque(id string, estoque int, quando time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE produtos SET estoque = $2, data_atualizacao = $3 WHERE id = $1`,
		id, estoque, quando,
	)
	if err != nil {
		return fmt.Errorf("update estoque: %w", err)
	}
	return nil
}

// ListAtivos lista os produtos ativos em ordem alfabética.
func (r *ProdutoRepo) ListAtivos() ([]*entity.Produto, error) {
	query := `SELECT ` + produtoColunas + ` FROM produtos WHERE ativo = TRUE ORDER BY nome ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Produto
	for rows.Next() {
		var p entity.Produto
		if err := rows.Scan(&p.ID, &p.Nome, &p.Categoria, &p.Codigo, &p.Estoque, &p.EstoqueMinimo,
			&p.Preco, &p.Unidade, &p.Descricao, &p.Foto, &p.Ativo, &p.DataCriacao, &p.DataAtualizacao); err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Desativar marca o produto como inativo, liberando o código para reuso.
func (r *ProdutoRepo) Desativar(id string, quando time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE produtos SET ativo = FALSE, data_atualizacao = $2 WHERE id = $1 AND ativo = TRUE`,
		id, quando,
	)
	if err != nil {
		return fmt.Errorf("desativar produto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
