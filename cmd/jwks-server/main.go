package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/TylerAdamMartinez/JWKS-server/internal/config"
	"github.com/TylerAdamMartinez/JWKS-server/internal/http/server"
	"github.com/TylerAdamMartinez/JWKS-server/internal/observability/logger"
)

func main() {
	// .env opcional; en prod las vars vienen del entorno
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.L().Fatal("config load failed", logger.Err(err))
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "jwks-server",
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, cleanup, err := server.Build(ctx, cfg)
	if err != nil {
		logger.L().Fatal("wiring failed", logger.Err(err))
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.L().Warn("cleanup error", logger.Err(err))
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.L().Info("jwks-server listening", logger.Addr(cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.L().Fatal("server failed", logger.Err(err))
	}
	logger.L().Info("shutdown complete")
}
