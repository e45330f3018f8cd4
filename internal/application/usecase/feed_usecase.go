package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// FeedUseCase casos de uso do feed social da obra: postagens, curtidas e
// comentários. Os contadores das postagens são mantidos no banco, de forma
// atômica, para sobreviver a curtidas concorrentes.
type FeedUseCase struct {
	repo           repository.FeedRepository
	comentarioRepo repository.ComentarioRepository
}

// NewFeedUseCase constrói o caso de uso.
func NewFeedUseCase(repo repository.FeedRepository, comentarioRepo repository.ComentarioRepository) *FeedUseCase {
	return &FeedUseCase{repo: repo, comentarioRepo: comentarioRepo}
}

// Create publica uma postagem.
func (uc *FeedUseCase) Create(in dto.CreateFeedRequest) (*dto.FeedResponse, error) {
	if in.Usuario == "" || in.Conteudo == "" {
		return nil, domain.ErrInvalidInput
	}
	tipo := in.Tipo
	if tipo == "" {
		tipo = entity.FeedPost
	}
	publico := true
	if in.Publico != nil {
		publico = *in.Publico
	}
	now := time.Now()
	post := &entity.FeedPostagem{
		ID:              uuid.New().String(),
		Usuario:         in.Usuario,
		Titulo:          in.Titulo,
		Conteudo:        in.Conteudo,
		Tipo:            tipo,
		ObraID:          in.ObraID,
		Imagens:         arrayOuVazio(in.Imagens),
		Tags:            arrayOuVazio(in.Tags),
		Publico:         publico,
		DataPublicacao:  now,
		DataAtualizacao: now,
	}
	if err := uc.repo.Create(post); err != nil {
		return nil, err
	}
	return dto.ToFeedResponse(post, nil), nil
}

// GetByID obtém a postagem com comentários.
func (uc *FeedUseCase) GetByID(id string) (*dto.FeedResponse, error) {
	post, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	comentarios, err := uc.comentarioRepo.ListByFeed(id)
	if err != nil {
		return nil, err
	}
	return dto.ToFeedResponse(post, comentarios), nil
}

// Update edita uma postagem.
func (uc *FeedUseCase) Update(id string, in dto.UpdateFeedRequest) (*dto.FeedResponse, error) {
	post, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	if in.Titulo != nil {
		post.Titulo = *in.Titulo
	}
	if in.Conteudo != nil {
		post.Conteudo = *in.Conteudo
	}
	if in.Tipo != nil {
		post.Tipo = *in.Tipo
	}
	if len(in.Imagens) > 0 {
		post.Imagens = arrayOuVazio(in.Imagens)
	}
	if len(in.Tags) > 0 {
		post.Tags = arrayOuVazio(in.Tags)
	}
	if in.Publico != nil {
		post.Publico = *in.Publico
	}
	post.DataAtualizacao = time.Now()
	if err := uc.repo.Update(post); err != nil {
		return nil, err
	}
	return dto.ToFeedResponse(post, nil), nil
}

// Delete remove a postagem e seus comentários.
func (uc *FeedUseCase) Delete(id string) error {
	post, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista as postagens públicas paginadas, com comentários embutidos.
func (uc *FeedUseCase) List(obraID, tipo string, page dto.PageRequest) (*dto.FeedListResponse, error) {
	page.DefaultPage(20)
	posts, total, err := uc.repo.List(repository.FiltroFeed{
		ObraID: obraID,
		Tipo:   tipo,
		Limit:  page.PerPage,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.FeedResponse, 0, len(posts))
	for _, post := range posts {
		comentarios, err := uc.comentarioRepo.ListByFeed(post.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *dto.ToFeedResponse(post, comentarios))
	}
	return &dto.FeedListResponse{
		Items:        items,
		PageResponse: dto.NewPageResponse(total, page),
	}, nil
}

// Curtir soma uma curtida e devolve o total atualizado.
func (uc *FeedUseCase) Curtir(id string) (*dto.CurtirResponse, error) {
	curtidas, err := uc.repo.IncrementarCurtidas(id)
	if err != nil {
		return nil, err
	}
	return &dto.CurtirResponse{Curtidas: curtidas}, nil
}

// Comentar adiciona um comentário e incrementa o contador da postagem.
func (uc *FeedUseCase) Comentar(feedID string, in dto.CreateComentarioRequest) (*dto.ComentarioResponse, error) {
	if in.Usuario == "" || in.Conteudo == "" {
		return nil, domain.ErrInvalidInput
	}
	post, err := uc.repo.GetByID(feedID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	comentario := &entity.ComentarioFeed{
		ID:             uuid.New().String(),
		FeedID:         feedID,
		Usuario:        in.Usuario,
		Conteudo:       in.Conteudo,
		DataComentario: time.Now(),
	}
	if err := uc.comentarioRepo.Create(comentario); err != nil {
		return nil, err
	}
	if err := uc.repo.SomarComentarios(feedID, 1); err != nil {
		return nil, err
	}
	return &dto.ComentarioResponse{
		ID:             comentario.ID,
		FeedID:         comentario.FeedID,
		Usuario:        comentario.Usuario,
		Conteudo:       comentario.Conteudo,
		DataComentario: comentario.DataComentario,
	}, nil
}

// RemoverComentario apaga o comentário e decrementa o contador (nunca abaixo
// de zero).
func (uc *FeedUseCase) RemoverComentario(feedID, comentarioID string) error {
	comentario, err := uc.comentarioRepo.GetByID(comentarioID)
	if err != nil {
		return err
	}
	if comentario == nil || comentario.FeedID != feedID {
		return domain.ErrNotFound
	}
	if err := uc.comentarioRepo.Delete(comentarioID); err != nil {
		return err
	}
	return uc.repo.SomarComentarios(feedID, -1)
}

func arrayOuVazio(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || !json.Valid(raw) {
		return json.RawMessage("[]")
	}
	return raw
}
