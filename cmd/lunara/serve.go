package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terraincognita07/lunara/internal/api"
	"github.com/terraincognita07/lunara/internal/cli"
	"github.com/terraincognita07/lunara/internal/config"
	"github.com/terraincognita07/lunara/internal/logging"
)

var ephemeral bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the JSON API on the configured host and port. Records are written
through to the configured storage driver and flushed on shutdown.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep records in memory only")
}

func runServe(cmd *cobra.Command, args []string) error {
	storage := cfg.Storage
	if ephemeral {
		storage.Driver = config.StorageMemory
	}

	sigCtx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	records, err := cli.OpenRecordStore(sigCtx, storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := records.Close(); err != nil {
			logger.Error("record store close failed", zap.Error(err))
		}
	}()

	location := mustLoadLocation(cfg.Server.Timezone)
	handler, err := api.NewHandler(records, location, logger.Named("api"))
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler, cfg.Server, logger)

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("lunara listening",
		zap.String("addr", cfg.Server.Address()),
		zap.String("storage", storage.Driver),
		zap.String("tz", location.String()),
	)
	if err := app.Listen(cfg.Server.Address()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, server config.ServerConfig, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Lunara",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${status} ${method} ${path} ${latency}\n",
		Output: logging.NewWriter(log.Named("http")),
	}))
	app.Use(compress.New())
	app.Use(cors.New(corsConfig(server.AllowedOrigins)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func corsConfig(allowedOrigins string) cors.Config {
	return cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: "Content-Disposition, X-Storage-Warning",
	}
}
