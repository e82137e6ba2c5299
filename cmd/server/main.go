package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelbase/reelbase/internal/auth"
	"github.com/reelbase/reelbase/internal/config"
	httpserver "github.com/reelbase/reelbase/internal/http"
	"github.com/reelbase/reelbase/internal/repository"
	"github.com/reelbase/reelbase/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "reelbase").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.New(dbCtx, store.Options{
		Driver: cfg.DBDriver,
		URL:    cfg.DBURL,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer st.Close()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLSecs)*time.Second)
	if err != nil {
		logger.Fatal().Err(err).Msg("init token manager")
	}

	repo := repository.New(st)
	server := httpserver.New(cfg, st, repo, tokens, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	logger.Info().Str("port", cfg.Port).Msg("server listening")

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("server error")
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}
