package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/handlers"
	"backoffice/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}

	if err := a.Accounts.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	if cfg.SeedDemoOperators {
		a.Accounts.SeedDemo(ctx)
	}

	// в live-режиме сразу тянем данные с API; демо-сторы поднимутся из KV или сида
	if a.Mode.IsLiveMode() {
		for _, f := range a.Stores.All() {
			f.Fetch(ctx)
			if msg := f.LastError(); msg != "" {
				logger.Warn("initial fetch failed", slog.String("store", f.Name()), slog.String("error", msg))
			}
		}
	}

	api := handlers.NewAPI(a.Stores, a.Audit, a.Mode, a.Accounts, a.Prefs)
	r := server.NewRouter(cfg, api, a.Metrics.Handler(), logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", srv.Addr), slog.String("data_mode", a.Mode.Current().DataMode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
	}

	// дождаться фоновых подтверждений мутаций
	if err := a.Close(); err != nil {
		logger.Error("close failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
