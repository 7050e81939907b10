package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/driftchat/driftchat/internal/chat"
	"github.com/driftchat/driftchat/internal/config"
	"github.com/driftchat/driftchat/internal/logging"
	"github.com/driftchat/driftchat/internal/server"
	"github.com/driftchat/driftchat/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", "text").Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The hub's run loop is the single writer for all pairing state.
	hub := chat.NewHub(logger)
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.NewMux(hub),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting driftchat server", "addr", cfg.Addr, "version", version.Version)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
