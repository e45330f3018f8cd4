package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obratrack/obratrack-api/internal/application/auth"
	"github.com/obratrack/obratrack-api/internal/application/estoque"
	"github.com/obratrack/obratrack-api/internal/application/importacao"
	"github.com/obratrack/obratrack-api/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ObraUC       *usecase.ObraUseCase
	EtapaUC      *usecase.EtapaUseCase
	MobiliarioUC *usecase.MobiliarioUseCase
	ProdutoUC    *usecase.ProdutoUseCase
	EstoqueUC    *estoque.UseCase
	ImportacaoUC *importacao.UseCase
	FeedUC       *usecase.FeedUseCase
	ConfigUC     *usecase.ConfiguracaoUseCase
	HistoricoUC  *usecase.HistoricoUseCase
	JWTSecret    string
	MaxUploadMB  int
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Login (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Obras (protegido)
	obras := protected.Group("/obras")
	obraHandler := NewObraHandler(deps.ObraUC)
	obras.Post("/", obraHandler.Create)
	obras.Get("/", obraHandler.List)
	obras.Get("/:id", obraHandler.GetByID)
	obras.Put("/:id", obraHandler.Update)
	obras.Delete("/:id", obraHandler.Delete)

	// Etapas e lixeira (protegido)
	etapaHandler := NewEtapaHandler(deps.EtapaUC)
	obras.Post("/:obraId/etapas", etapaHandler.Create)
	etapas := protected.Group("/etapas")
	etapas.Put("/:id", etapaHandler.Update)
	etapas.Delete("/:id/permanente", etapaHandler.DeletePermanente)
	etapas.Delete("/:id", etapaHandler.SoftDelete)
	etapas.Post("/:id/restaurar", etapaHandler.Restaurar)
	protected.Get("/lixeira", etapaHandler.Lixeira)
	protected.Delete("/lixeira", etapaHandler.LimparLixeira)

	// Mobiliário (protegido)
	mobiliarioHandler := NewMobiliarioHandler(deps.MobiliarioUC)
	obras.Post("/:obraId/mobiliario", mobiliarioHandler.Create)
	obras.Get("/:obraId/mobiliario", mobiliarioHandler.ListByObra)
	protected.Delete("/mobiliario/:id", mobiliarioHandler.Delete)

	// Produtos e estoque (protegido). As rotas literais vêm antes de /:id.
	produtos := protected.Group("/produtos")
	produtoHandler := NewProdutoHandler(deps.ProdutoUC, deps.EstoqueUC, deps.ImportacaoUC, deps.MaxUploadMB)
	produtos.Post("/importar", produtoHandler.Importar)
	produtos.Get("/relatorio", produtoHandler.Relatorio)
	produtos.Post("/", produtoHandler.Create)
	produtos.Get("/", produtoHandler.List)
	produtos.Get("/:id", produtoHandler.GetByID)
	produtos.Put("/:id", produtoHandler.Update)
	produtos.Delete("/:id", produtoHandler.Delete)
	produtos.Post("/:id/dispensar", produtoHandler.Dispensar)
	produtos.Get("/:id/movimentacoes", produtoHandler.MovimentacoesProduto)
	produtos.Put("/:id/foto", produtoHandler.Foto)
	protected.Get("/movimentacoes", produtoHandler.Movimentacoes)

	// Feed (protegido)
	feed := protected.Group("/feed")
	feedHandler := NewFeedHandler(deps.FeedUC)
	feed.Post("/", feedHandler.Create)
	feed.Get("/", feedHandler.List)
	feed.Get("/:id", feedHandler.GetByID)
	feed.Put("/:id", feedHandler.Update)
	feed.Delete("/:id", feedHandler.Delete)
	feed.Post("/:id/curtir", feedHandler.Curtir)
	feed.Post("/:id/comentarios", feedHandler.Comentar)
	feed.Delete("/:id/comentarios/:comentarioId", feedHandler.RemoverComentario)

	// Configurações e histórico (protegido)
	sistemaHandler := NewSistemaHandler(deps.ConfigUC, deps.HistoricoUC)
	configuracoes := protected.Group("/configuracoes")
	configuracoes.Post("/", sistemaHandler.CreateConfiguracao)
	configuracoes.Get("/", sistemaHandler.ListConfiguracoes)
	configuracoes.Get("/:chave", sistemaHandler.GetConfiguracao)
	configuracoes.Put("/:id", sistemaHandler.UpdateConfiguracao)
	historico := protected.Group("/historico")
	historico.Post("/limpar", sistemaHandler.LimparHistorico)
	historico.Post("/", sistemaHandler.RegistrarHistorico)
	historico.Get("/", sistemaHandler.ListHistorico)
	historico.Delete("/:id", sistemaHandler.DeleteHistorico)
}
