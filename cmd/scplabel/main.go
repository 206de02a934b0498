package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sydlexius/scplabel/internal/api"
	"github.com/sydlexius/scplabel/internal/assets"
	"github.com/sydlexius/scplabel/internal/compose"
	"github.com/sydlexius/scplabel/internal/config"
	"github.com/sydlexius/scplabel/internal/database"
	"github.com/sydlexius/scplabel/internal/logging"
	"github.com/sydlexius/scplabel/internal/project"
	"github.com/sydlexius/scplabel/internal/text"
	"github.com/sydlexius/scplabel/internal/version"
)

func main() {
	// Handle subcommands before starting the server
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "render":
			runRender(os.Args[2:])
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	configPath := os.Getenv("SL_CONFIG_PATH")
	if configPath == "" {
		configPath = "/data/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Set up structured logging via the logging Manager
	logManager, logger := logging.NewManager(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	defer logManager.Close() //nolint:errcheck
	slog.SetDefault(logger)

	// Open database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database", "error", err)
		}
	}()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("database ready", slog.String("path", cfg.Database.Path))

	// Load assets
	assetManager := assets.NewManager(cfg.Assets.ResourceDir, cfg.Assets.PackDir, logger)
	if err := assetManager.Load(); err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}

	// Set up the text renderer and composer
	var renderer *text.Renderer
	if cfg.Render.FontPath != "" {
		renderer, err = text.NewFromFile(cfg.Render.FontPath)
	} else {
		renderer, err = text.New()
	}
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	composer := compose.New(renderer)

	projectService := project.NewService(db)

	logger.Info("starting scplabel",
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
	)

	router := api.NewRouter(api.RouterDeps{
		Composer:       composer,
		Assets:         assetManager,
		ProjectService: projectService,
		LogManager:     logManager,
		Logger:         logger,
	})

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(ctx),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Hot-reload assets on filesystem changes
	if cfg.Assets.Watch {
		go assetManager.Watch(ctx)
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
