package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-adoption-marketplace/internal/adapters/auth/remote"
	pg "pet-adoption-marketplace/internal/adapters/storage/postgres"
	"pet-adoption-marketplace/internal/config"
	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/logger"
	"pet-adoption-marketplace/internal/ports/auth"
	"pet-adoption-marketplace/internal/router"
)

// @title Pet Adoption Marketplace API
// @version 1.0
// @description Catálogo de mascotas, notificaciones de adopción y chat entre usuarios.
// @BasePath /
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer opened.Close()

		if err := pg.Migrate(ctx, opened); err != nil {
			log.Error("postgres migrate failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		db = opened
		log.Info("using postgres store", nil)
	} else {
		log.Info("using in-memory store", map[string]any{"seed_demo": cfg.SeedDemo})
	}

	// sin AUTH_BASE_URL => modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if cfg.AuthBaseURL != "" {
		client, err := remote.NewClient(remote.Config{BaseURL: cfg.AuthBaseURL, APIKey: cfg.AuthAPIKey})
		if err != nil {
			log.Error("auth client config invalid", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		verifier = remote.NewVerifier(client)
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go func() {
			t := time.NewTicker(time.Minute)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					if n := limiter.Cleanup(); n > 0 {
						log.Debug("rate limiters evicted", map[string]any{"count": n})
					}
				}
			}
		}()
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Logger:       log,
		Config:       cfg,
		RateLimiter:  limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"err": err.Error()})
	}
	log.Info("server stopped", nil)
}
