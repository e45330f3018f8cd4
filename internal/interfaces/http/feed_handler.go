package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/usecase"
)

// FeedHandler trata as rotas do feed social.
type FeedHandler struct {
	uc *usecase.FeedUseCase
}

// NewFeedHandler constrói o handler.
func NewFeedHandler(uc *usecase.FeedUseCase) *FeedHandler {
	return &FeedHandler{uc: uc}
}

// Create godoc
// @Summary      Publicar no feed
// @Tags         feed
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFeedRequest  true  "Postagem"
// @Success      201   {object}  dto.FeedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/feed [post]
func (h *FeedHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFeedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Usuario == "" {
		in.Usuario = GetUsuario(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar feed (postagens públicas)
// @Tags         feed
// @Security     Bearer
// @Produce      json
// @Param        obra_id   query  string  false  "Filtrar por obra"
// @Param        tipo      query  string  false  "Filtrar por tipo"
// @Param        page      query  int     false  "Página"       default(1)
// @Param        per_page  query  int     false  "Por página"   default(20)
// @Success      200  {object}  dto.FeedListResponse
// @Router       /api/feed [get]
func (h *FeedHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.List(c.Query("obra_id"), c.Query("tipo"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter postagem com comentários
// @Tags         feed
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da postagem"
// @Success      200  {object}  dto.FeedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feed/{id} [get]
func (h *FeedHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar postagem
// @Tags         feed
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da postagem"
// @Param        body  body  dto.UpdateFeedRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.FeedResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/feed/{id} [put]
func (h *FeedHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFeedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir postagem
// @Tags         feed
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da postagem"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feed/{id} [delete]
func (h *FeedHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Postagem removida com sucesso"})
}

// Curtir godoc
// @Summary      Curtir postagem
// @Tags         feed
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da postagem"
// @Success      200  {object}  dto.CurtirResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feed/{id}/curtir [post]
func (h *FeedHandler) Curtir(c *fiber.Ctx) error {
	out, err := h.uc.Curtir(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Comentar godoc
// @Summary      Comentar postagem
// @Tags         feed
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da postagem"
// @Param        body  body  dto.CreateComentarioRequest  true  "Comentário"
// @Success      201   {object}  dto.ComentarioResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/feed/{id}/comentarios [post]
func (h *FeedHandler) Comentar(c *fiber.Ctx) error {
	var in dto.CreateComentarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Usuario == "" {
		in.Usuario = GetUsuario(c)
	}
	out, err := h.uc.Comentar(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoverComentario godoc
// @Summary      Remover comentário
// @Tags         feed
// @Security     Bearer
// @Produce      json
// @Param        id            path  string  true  "ID da postagem"
// @Param        comentarioId  path  string  true  "ID do comentário"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feed/{id}/comentarios/{comentarioId} [delete]
func (h *FeedHandler) RemoverComentario(c *fiber.Ctx) error {
	if err := h.uc.RemoverComentario(c.Params("id"), c.Params("comentarioId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comentário removido com sucesso"})
}
