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
	"github.com/google/uuid"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/cache"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/usecase"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/apiclient"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/backend"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/kafka"
	infrapdf "github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/pdf"
	httpRouter "github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/http"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/config"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	origin := uuid.NewString()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Str("cache", cfg.Cache.Driver).
		Str("origin", origin).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	repo, closeRepo, err := backend.Open(ctx, cfg, cfg.Cache.Driver)
	if err != nil {
		log.Fatal().Err(err).Msg("backend de caché")
	}
	defer closeRepo()
	store := cache.NewStore(repo, log, cache.WithPrefix(cfg.Cache.Prefix))

	// Invalidaciones: bus local; con Kafka además se difunden a las otras réplicas.
	local := invalidate.NewLocalBus()
	var bus invalidate.Bus = local
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka)
		defer producer.Close()
		bus = &invalidate.Fanout{Local: local, Remote: producer, Origin: origin}

		group := cfg.Kafka.Group
		if group == "" {
			group = cfg.App.Name + "-" + origin
		}
		relay := &invalidate.Relay{Local: local, Origin: origin, Evict: usecase.Evictor(store, log)}
		consumer := kafka.NewConsumer(cfg.Kafka, group, log)
		go func() {
			if err := consumer.Run(ctx, relay.Handle); err != nil {
				log.Error().Err(err).Msg("consumidor de invalidaciones detenido")
			}
		}()
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("invalidaciones vía Kafka")
	}

	deps := usecase.Deps{
		API:   apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, log),
		Cache: store,
		Bus:   bus,
		Log:   log,
		TTLs: usecase.TTLs{
			Catalog:          cfg.Cache.CatalogTTL,
			AdminInventories: cfg.Cache.AdminInventories,
			AdminBorrows:     cfg.Cache.AdminBorrows,
			UserReturns:      cfg.Cache.UserReturns,
			Users:            cfg.Cache.Users,
		},
	}
	sessions := httpRouter.NewSessionRegistry(deps, cfg.HTTP.SessionIdleTTL, log)
	defer sessions.Close()
	if cfg.HTTP.SessionIdleTTL > 0 {
		go sessions.Run(ctx, cfg.HTTP.SessionIdleTTL/2)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SMI-HIMPA BFF",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": sessions.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:     sessions,
		Bus:          bus,
		Formatter:    table.NewFormatter(cfg.Table.Locale, cfg.Table.Timezone),
		PDF:          infrapdf.NewTablePDFGenerator(cfg.App.Name),
		JWTSecret:    cfg.JWT.Secret,
		SecureCookie: cfg.App.Env == "production",
		Origin:       origin,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
