package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assettrack/internal/api/routes"
	"assettrack/internal/config"
	"assettrack/internal/dao"
	"assettrack/internal/events"
	"assettrack/internal/logger"
	"assettrack/internal/metrics"
	"assettrack/internal/models"
	"assettrack/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := models.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := models.Close(db); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}()
	if err := models.Migrate(db); err != nil {
		return err
	}

	m := metrics.New()

	var rdb *redis.Client
	if cfg.Security.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		p, err := events.Dial(cfg.Events.URL, cfg.Events.Queue)
		if err != nil {
			return err
		}
		publisher = p
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("closing event publisher")
		}
	}()

	// Create default user if database is empty
	authService := services.NewAuthService(cfg, dao.NewUserDAO(db), log)
	if err := authService.CreateDefaultUser(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to create default user")
	}

	// Set Gin mode
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	routes.SetupRoutes(r, routes.Deps{
		Config:    cfg,
		DB:        db,
		Logger:    log,
		Metrics:   m,
		Publisher: publisher,
		Redis:     rdb,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("database", cfg.Database.Type).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
