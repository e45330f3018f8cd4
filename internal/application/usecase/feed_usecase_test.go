package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/usecase"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeFeedRepo struct {
	posts map[string]*entity.FeedPostagem
}

func newFakeFeedRepo() *fakeFeedRepo {
	return &fakeFeedRepo{posts: map[string]*entity.FeedPostagem{}}
}

func (r *fakeFeedRepo) Create(p *entity.FeedPostagem) error {
	copia := *p
	r.posts[p.ID] = &copia
	return nil
}

func (r *fakeFeedRepo) GetByID(id string) (*entity.FeedPostagem, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (r *fakeFeedRepo) Update(p *entity.FeedPostagem) error {
	atual, ok := r.posts[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// Contadores só mudam pelas operações atômicas.
	copia := *p
	copia.Curtidas = atual.Curtidas
	copia.ComentariosCount = atual.ComentariosCount
	r.posts[p.ID] = &copia
	return nil
}

func (r *fakeFeedRepo) Delete(id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakeFeedRepo) List(filtro repository.FiltroFeed) ([]*entity.FeedPostagem, int, error) {
	var out []*entity.FeedPostagem
	for _, p := range r.posts {
		if !p.Publico {
			continue
		}
		if filtro.ObraID != "" && p.ObraID != filtro.ObraID {
			continue
		}
		if filtro.Tipo != "" && p.Tipo != filtro.Tipo {
			continue
		}
		copia := *p
		out = append(out, &copia)
	}
	return out, len(out), nil
}

func (r *fakeFeedRepo) IncrementarCurtidas(id string) (int, error) {
	p, ok := r.posts[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.Curtidas++
	return p.Curtidas, nil
}

func (r *fakeFeedRepo) SomarComentarios(id string, delta int) error {
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ComentariosCount += delta
	if p.ComentariosCount < 0 {
		p.ComentariosCount = 0
	}
	return nil
}

type fakeComentarioRepo struct {
	comentarios map[string]*entity.ComentarioFeed
}

func newFakeComentarioRepo() *fakeComentarioRepo {
	return &fakeComentarioRepo{comentarios: map[string]*entity.ComentarioFeed{}}
}

func (r *fakeComentarioRepo) Create(c *entity.ComentarioFeed) error {
	copia := *c
	r.comentarios[c.ID] = &copia
	return nil
}

func (r *fakeComentarioRepo) GetByID(id string) (*entity.ComentarioFeed, error) {
	c, ok := r.comentarios[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (r *fakeComentarioRepo) Delete(id string) error {
	delete(r.comentarios, id)
	return nil
}

func (r *fakeComentarioRepo) ListByFeed(feedID string) ([]*entity.ComentarioFeed, error) {
	var out []*entity.ComentarioFeed
	for _, c := range r.comentarios {
		if c.FeedID == feedID {
			copia := *c
			out = append(out, &copia)
		}
	}
	return out, nil
}

func buildFeedUseCase() (*usecase.FeedUseCase, *fakeFeedRepo) {
	feedRepo := newFakeFeedRepo()
	return usecase.NewFeedUseCase(feedRepo, newFakeComentarioRepo()), feedRepo
}

func publicar(t *testing.T, uc *usecase.FeedUseCase) *dto.FeedResponse {
	t.Helper()
	out, err := uc.Create(dto.CreateFeedRequest{
		Usuario:  "joana",
		Titulo:   "Concretagem da laje",
		Conteudo: "Laje do 3º pavimento concluída hoje.",
		Tipo:     entity.FeedMilestone,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Postagens
// ──────────────────────────────────────────────────────────────────────────────

func TestFeed_Create_Defaults(t *testing.T) {
	uc, _ := buildFeedUseCase()

	out, err := uc.Create(dto.CreateFeedRequest{Usuario: "joana", Conteudo: "Bom dia, obra!"})
	require.NoError(t, err)

	assert.Equal(t, entity.FeedPost, out.Tipo, "tipo vazio vira post")
	assert.True(t, out.Publico, "postagem é pública por padrão")
	assert.Equal(t, json.RawMessage("[]"), out.Imagens)
	assert.Equal(t, json.RawMessage("[]"), out.Tags)
	assert.Equal(t, 0, out.Curtidas)
}

func TestFeed_Create_SemConteudo(t *testing.T) {
	uc, _ := buildFeedUseCase()

	_, err := uc.Create(dto.CreateFeedRequest{Usuario: "joana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Curtidas e comentários: contadores
// ──────────────────────────────────────────────────────────────────────────────

func TestFeed_Curtir_Acumula(t *testing.T) {
	uc, _ := buildFeedUseCase()
	post := publicar(t, uc)

	for esperado := 1; esperado <= 3; esperado++ {
		out, err := uc.Curtir(post.ID)
		require.NoError(t, err)
		assert.Equal(t, esperado, out.Curtidas)
	}
}

func TestFeed_Curtir_PostInexistente(t *testing.T) {
	uc, _ := buildFeedUseCase()

	_, err := uc.Curtir("nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeed_Comentar_IncrementaContador(t *testing.T) {
	uc, feedRepo := buildFeedUseCase()
	post := publicar(t, uc)

	comentario, err := uc.Comentar(post.ID, dto.CreateComentarioRequest{
		Usuario:  "carlos",
		Conteudo: "Parabéns, equipe!",
	})
	require.NoError(t, err)
	assert.Equal(t, post.ID, comentario.FeedID)

	persistido, err := feedRepo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, persistido.ComentariosCount)

	carregado, err := uc.GetByID(post.ID)
	require.NoError(t, err)
	require.Len(t, carregado.Comentarios, 1)
	assert.Equal(t, "Parabéns, equipe!", carregado.Comentarios[0].Conteudo)
}

func TestFeed_RemoverComentario_DecrementaContador(t *testing.T) {
	uc, feedRepo := buildFeedUseCase()
	post := publicar(t, uc)
	comentario, err := uc.Comentar(post.ID, dto.CreateComentarioRequest{
		Usuario: "carlos", Conteudo: "Parabéns!",
	})
	require.NoError(t, err)

	require.NoError(t, uc.RemoverComentario(post.ID, comentario.ID))

	persistido, err := feedRepo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, persistido.ComentariosCount)
}

// Remover um comentário passando o feed errado é 404: o comentário precisa
// pertencer à postagem da URL.
func TestFeed_RemoverComentario_FeedErrado(t *testing.T) {
	uc, _ := buildFeedUseCase()
	a := publicar(t, uc)
	b := publicar(t, uc)
	comentario, err := uc.Comentar(a.ID, dto.CreateComentarioRequest{
		Usuario: "carlos", Conteudo: "Oi",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.RemoverComentario(b.ID, comentario.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listagem
// ──────────────────────────────────────────────────────────────────────────────

func TestFeed_List_SoPublicas(t *testing.T) {
	uc, _ := buildFeedUseCase()
	publicar(t, uc)

	privado := false
	_, err := uc.Create(dto.CreateFeedRequest{
		Usuario: "joana", Conteudo: "Rascunho interno", Publico: &privado,
	})
	require.NoError(t, err)

	out, err := uc.List("", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1, "postagens privadas ficam fora do feed")
	assert.Equal(t, 1, out.Total)
}

func TestFeed_List_FiltraPorTipo(t *testing.T) {
	uc, _ := buildFeedUseCase()
	publicar(t, uc) // milestone
	_, err := uc.Create(dto.CreateFeedRequest{Usuario: "joana", Conteudo: "Aviso", Tipo: entity.FeedAlert})
	require.NoError(t, err)

	out, err := uc.List("", entity.FeedAlert, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, entity.FeedAlert, out.Items[0].Tipo)
}
