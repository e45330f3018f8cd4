package repository

import "github.com/obratrack/obratrack-api/internal/domain/entity"

// FiltroFeed filtros do listado paginado do feed. Apenas posts públicos são
// listados; ObraID e Tipo vazios não filtram.
type FiltroFeed struct {
	ObraID string
	Tipo   string
	Limit  int
	Offset int
}

// FeedRepository define a porta de persistência do feed.
// IncrementarCurtidas e SomarComentarios atualizam os contadores
// desnormalizados de forma atômica no banco.
type FeedRepository interface {
	Create(post *entity.FeedPostagem) error
	GetByID(id string) (*entity.FeedPostagem, error)
	Update(post *entity.FeedPostagem) error
	Delete(id string) error
	List(filtro FiltroFeed) ([]*entity.FeedPostagem, int, error)
	IncrementarCurtidas(id string) (int, error)
	SomarComentarios(id string, delta int) error
}

// ComentarioRepository define a porta de persistência dos comentários do feed.
type ComentarioRepository interface {
	Create(comentario *entity.ComentarioFeed) error
	GetByID(id string) (*entity.ComentarioFeed, error)
	Delete(id string) error
	ListByFeed(feedID string) ([]*entity.ComentarioFeed, error)
}
