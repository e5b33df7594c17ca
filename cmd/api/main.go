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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Inventario-sheets/internal/application/auth"
	appinventory "github.com/jhoicas/Inventario-sheets/internal/application/inventory"
	infrapdf "github.com/jhoicas/Inventario-sheets/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-sheets/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/Inventario-sheets/internal/interfaces/http"
	"github.com/jhoicas/Inventario-sheets/pkg/config"
	"github.com/jhoicas/Inventario-sheets/pkg/logger"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("sheet", cfg.Store.SheetName).
		Msg("iniciando aplicación")

	ctx := context.Background()
	sheetStore, closeStore, err := store.Open(ctx, cfg, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de hojas")
	}
	defer closeStore()

	invLog := log.Component("inventory")
	loader := appinventory.NewCachedLoader(sheetStore, cfg.Store.SheetName, cfg.Store.CacheTTL, invLog)
	syncer := appinventory.NewReplaceAllSyncer(sheetStore, cfg.Store.SheetName, invLog)
	inventoryUC := appinventory.NewInventoryUseCase(loader, syncer, infrapdf.NewMarotoReportGenerator(), invLog)
	sessions := appinventory.NewSessionRegistry(inventoryUC, cfg.Store.SessionIdleTTL)

	// Falla rápido si la hoja no se puede leer; la caché queda caliente para la primera sesión.
	if _, err := loader.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("lectura inicial de la hoja")
	}

	authUC := auth.NewAuthUseCase(
		auth.Operator{
			Username:     cfg.Auth.Username,
			PasswordHash: cfg.Auth.PasswordHash,
			Role:         cfg.Auth.Role,
		},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)
	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: autenticación desactivada, todas las peticiones comparten la sesión por defecto")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Sheets API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  cfg.App.Name,
			"store":    cfg.Store.Driver,
			"sessions": sessions.Len(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC: inventoryUC,
		Sessions:    sessions,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
