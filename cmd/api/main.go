package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"

	"github.com/obratrack/obratrack-api/internal/application/auth"
	"github.com/obratrack/obratrack-api/internal/application/estoque"
	"github.com/obratrack/obratrack-api/internal/application/importacao"
	"github.com/obratrack/obratrack-api/internal/application/usecase"
	infrapdf "github.com/obratrack/obratrack-api/internal/infrastructure/pdf"
	"github.com/obratrack/obratrack-api/internal/infrastructure/postgres"
	"github.com/obratrack/obratrack-api/internal/infrastructure/tabular"
	httpRouter "github.com/obratrack/obratrack-api/internal/interfaces/http"
	"github.com/obratrack/obratrack-api/pkg/config"
	"github.com/obratrack/obratrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	produtoRepo := postgres.NewProdutoRepository(pool)
	movimentacaoRepo := postgres.NewMovimentacaoRepository(pool)
	obraRepo := postgres.NewObraRepository(pool)
	etapaRepo := postgres.NewEtapaRepository(pool)
	lixeiraRepo := postgres.NewLixeiraRepository(pool)
	mobiliarioRepo := postgres.NewMobiliarioRepository(pool)
	feedRepo := postgres.NewFeedRepository(pool)
	comentarioRepo := postgres.NewComentarioRepository(pool)
	configRepo := postgres.NewConfiguracaoRepository(pool)
	historicoRepo := postgres.NewHistoricoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	estoqueUC := estoque.NewUseCase(txRunner, produtoRepo, movimentacaoRepo)
	importacaoUC := importacao.NewUseCase(
		tabular.NewOpener(cfg.Import.ExcelEnabled), txRunner, produtoRepo,
	)
	produtoUC := usecase.NewProdutoUseCase(produtoRepo, estoqueUC, infrapdf.NewMarotoRelatorioGenerator())
	obraUC := usecase.NewObraUseCase(obraRepo, etapaRepo, mobiliarioRepo, historicoRepo)
	etapaUC := usecase.NewEtapaUseCase(etapaRepo, lixeiraRepo, obraRepo)
	mobiliarioUC := usecase.NewMobiliarioUseCase(mobiliarioRepo, obraRepo)
	feedUC := usecase.NewFeedUseCase(feedRepo, comentarioRepo)
	configUC := usecase.NewConfiguracaoUseCase(configRepo)
	historicoUC := usecase.NewHistoricoUseCase(historicoRepo)

	adminHash := cfg.Admin.PasswordHash
	if adminHash == "" && cfg.Admin.Password != "" {
		// Conveniência de desenvolvimento: ADMIN_PASSWORD em texto puro
		// é hasheada no boot. Em produção use ADMIN_PASSWORD_HASH.
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash da senha do administrador")
		}
		adminHash = string(hashed)
	}
	if adminHash == "" {
		log.Fatal().Msg("defina ADMIN_PASSWORD_HASH ou ADMIN_PASSWORD")
	}
	authUC := auth.NewUseCase(historicoRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.AdminConfig{
		Usuario: cfg.Admin.Usuario,
		Hash:    adminHash,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    (cfg.Import.MaxUploadMB + 1) * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ObraTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ObraUC:       obraUC,
		EtapaUC:      etapaUC,
		MobiliarioUC: mobiliarioUC,
		ProdutoUC:    produtoUC,
		EstoqueUC:    estoqueUC,
		ImportacaoUC: importacaoUC,
		FeedUC:       feedUC,
		ConfigUC:     configUC,
		HistoricoUC:  historicoUC,
		JWTSecret:    cfg.JWT.Secret,
		MaxUploadMB:  cfg.Import.MaxUploadMB,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
