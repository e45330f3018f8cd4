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

var _ repository.FeedRepository = (*FeedRepo)(nil)
var _ repository.ComentarioRepository = (*ComentarioRepo)(nil)

const feedColunas = `id, usuario, titulo, conteudo, tipo, obra_id, imagens, tags, curtidas, comentarios_count, publico, data_publicacao, data_atualizacao`

// FeedRepo persiste as postagens do feed.
type FeedRepo struct {
	q Querier
}

func NewFeedRepository(q Querier) *FeedRepo {
	return &FeedRepo{q: q}
}

func (r *FeedRepo) Create(post *entity.FeedPostagem) error {
	query := `
		INSERT INTO feed_postagens (` + feedColunas + `)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		post.ID, post.Usuario, post.Titulo, post.Conteudo, post.Tipo, post.ObraID,
		post.Imagens, post.Tags, post.Curtidas, post.ComentariosCount,
		post.Publico, post.DataPublicacao, post.DataAtualizacao,
	)
	if err != nil {
		return fmt.Errorf("insert feed: %w", err)
	}
	return nil
}

func (r *FeedRepo) GetByID(id string) (*entity.FeedPostagem, error) {
	query := `SELECT id, usuario, titulo, conteudo, tipo, COALESCE(obra_id, ''), imagens, tags,
		curtidas, comentarios_count, publico, data_publicacao, data_atualizacao
		FROM feed_postagens WHERE id = $1`
	var p entity.FeedPostagem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Usuario, &p.Titulo, &p.Conteudo, &p.Tipo, &p.ObraID, &p.Imagens, &p.Tags,
		&p.Curtidas, &p.ComentariosCount, &p.Publico, &p.DataPublicacao, &p.DataAtualizacao,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return &p, nil
}

func (r *FeedRepo) Update(post *entity.FeedPostagem) error {
	query := `
		UPDATE feed_postagens
		SET titulo = $2, conteudo = $3, tipo = $4, obra_id = NULLIF($5, ''), imagens = $6,
		    tags = $7, publico = $8, data_atualizacao = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		post.ID, post.Titulo, post.Conteudo, post.Tipo, post.ObraID,
		post.Imagens, post.Tags, post.Publico, post.DataAtualizacao,
	)
	if err != nil {
		return fmt.Errorf("update feed: %w", err)
	}
	return nil
}

// Delete remove a postagem; comentários caem em cascata.
func (r *FeedRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM feed_postagens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	return nil
}

// List retorna só postagens públicas, paginadas, com o total que casa com o filtro.
func (r *FeedRepo) List(filtro repository.FiltroFeed) ([]*entity.FeedPostagem, int, error) {
	where := ` WHERE publico = TRUE`
	args := []any{}
	if filtro.ObraID != "" {
		args = append(args, filtro.ObraID)
		where += fmt.Sprintf(` AND obra_id = $%d`, len(args))
	}
	if filtro.Tipo != "" {
		args = append(args, filtro.Tipo)
		where += fmt.Sprintf(` AND tipo = $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM feed_postagens`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feed: %w", err)
	}

	args = append(args, filtro.Limit, filtro.Offset)
	query := `SELECT id, usuario, titulo, conteudo, tipo, COALESCE(obra_id, ''), imagens, tags,
		curtidas, comentarios_count, publico, data_publicacao, data_atualizacao
		FROM feed_postagens` + where +
		fmt.Sprintf(` ORDER BY data_publicacao DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feed: %w", err)
	}
	defer rows.Close()
	var list []*entity.FeedPostagem
	for rows.Next() {
		var p entity.FeedPostagem
		if err := rows.Scan(&p.ID, &p.Usuario, &p.Titulo, &p.Conteudo, &p.Tipo, &p.ObraID,
			&p.Imagens, &p.Tags, &p.Curtidas, &p.ComentariosCount, &p.Publico,
			&p.DataPublicacao, &p.DataAtualizacao); err != nil {
			return nil, 0, fmt.Errorf("scan feed: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// IncrementarCurtidas soma 1 ao contador de forma atômica e devolve o novo valor.
func (r *FeedRepo) IncrementarCurtidas(id string) (int, error) {
	var curtidas int
	err := r.q.QueryRow(context.Background(),
		`UPDATE feed_postagens SET curtidas = curtidas + 1 WHERE id = $1 RETURNING curtidas`,
		id).Scan(&curtidas)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("incrementar curtidas: %w", err)
	}
	return curtidas, nil
}

// SomarComentarios ajusta o contador desnormalizado. GREATEST impede valor negativo.
func (r *FeedRepo) SomarComentarios(id string, delta int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE feed_postagens SET comentarios_count = GREATEST(comentarios_count + $2, 0) WHERE id = $1`,
		id, delta)
	if err != nil {
		return fmt.Errorf("somar comentarios: %w", err)
	}
	return nil
}

// ComentarioRepo persiste os comentários do feed.
type ComentarioRepo struct {
	q Querier
}

func NewComentarioRepository(q Querier) *ComentarioRepo {
	return &ComentarioRepo{q: q}
}

func (r *ComentarioRepo) Create(comentario *entity.ComentarioFeed) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO feed_comentarios (id, feed_id, usuario, conteudo, data_comentario)
		 VALUES ($1, $2, $3, $4, $5)`,
		comentario.ID, comentario.FeedID, comentario.Usuario, comentario.Conteudo, comentario.DataComentario,
	)
	if err != nil {
		return fmt.Errorf("insert comentario: %w", err)
	}
	return nil
}

func (r *ComentarioRepo) GetByID(id string) (*entity.ComentarioFeed, error) {
	var c entity.ComentarioFeed
	err := r.q.QueryRow(context.Background(),
		`SELECT id, feed_id, usuario, conteudo, data_comentario FROM feed_comentarios WHERE id = $1`,
		id).Scan(&c.ID, &c.FeedID, &c.Usuario, &c.Conteudo, &c.DataComentario)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comentario: %w", err)
	}
	return &c, nil
}

func (r *ComentarioRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM feed_comentarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comentario: %w", err)
	}
	return nil
}

func (r *ComentarioRepo) ListByFeed(feedID string) ([]*entity.ComentarioFeed, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, feed_id, usuario, conteudo, data_comentario
		 FROM feed_comentarios WHERE feed_id = $1 ORDER BY data_comentario ASC`, feedID)
	if err != nil {
		return nil, fmt.Errorf("list comentarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComentarioFeed
	for rows.Next() {
		var c entity.ComentarioFeed
		if err := rows.Scan(&c.ID, &c.FeedID, &c.Usuario, &c.Conteudo, &c.DataComentario); err != nil {
			return nil, fmt.Errorf("scan comentario: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
