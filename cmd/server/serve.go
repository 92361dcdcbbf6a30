package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"art-gallery-backend/docs"
	"art-gallery-backend/internal/cache"
	"art-gallery-backend/internal/config"
	"art-gallery-backend/internal/database"
	"art-gallery-backend/internal/middleware"
	"art-gallery-backend/internal/server"
	"art-gallery-backend/internal/services"
	"art-gallery-backend/internal/storage"
	"art-gallery-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	rateLimiterSweep  = time.Minute
	cacheKeyPrefix    = "art-gallery:"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	configureSwagger(cfg.BaseURL)

	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("failed to initialize migrator: %w", err)
	}
	runErr := migrator.Run()
	migrator.Close()
	if runErr != nil {
		return fmt.Errorf("migration failed: %w", runErr)
	}

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := store.New(db)

	categoryCache := newCache(ctx, cfg, log)
	if closer, ok := categoryCache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	log.WithField("backend", cfg.StorageBackend).Info("image storage configured")

	auth, err := services.NewAuthService(repo, cfg.SecretKey, cfg.Algorithm, time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, auth, log)
	limiter.StartCleanup(ctx, rateLimiterSweep)

	router := server.NewRouter(server.Dependencies{
		Config:      cfg,
		Log:         log,
		Repo:        repo,
		Cache:       categoryCache,
		Storage:     backend,
		Auth:        auth,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// configureSwagger points the generated docs at BASE_URL.
func configureSwagger(baseURL string) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return
	}
	docs.SwaggerInfo.Host = u.Host
	if u.Scheme == "https" {
		docs.SwaggerInfo.Schemes = []string{"https", "http"}
	} else {
		docs.SwaggerInfo.Schemes = []string{"http", "https"}
	}
}

// newCache connects to Redis when REDIS_URL is set. An unreachable Redis
// degrades to no caching rather than failing startup.
func newCache(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) cache.Cache {
	if cfg.RedisURL == "" {
		return cache.Nop{}
	}
	r, err := cache.NewRedis(ctx, cfg.RedisURL, cacheKeyPrefix)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, category cache disabled")
		return cache.Nop{}
	}
	return r
}

func newBackend(cfg *config.Config) (storage.Backend, error) {
	if cfg.StorageBackend == config.StorageSupabase {
		b, err := storage.NewSupabaseBackend(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	b, err := storage.NewLocalBackend(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return b, nil
}
