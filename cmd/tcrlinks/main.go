package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"tcrlinks/internal/config"
	"tcrlinks/internal/render"
	"tcrlinks/internal/resolver"
	"tcrlinks/internal/server"
	"tcrlinks/internal/store"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.WithFields(logrus.Fields{
		"listen_addr":      cfg.ListenAddr,
		"public_base_url":  cfg.PublicBaseURL,
		"app_scheme":       cfg.AppScheme,
		"auto_open":        cfg.AutoOpen,
		"store_configured": cfg.StoreURL != "" && cfg.StoreAnonKey != "",
	}).Info("Configuration loaded successfully")

	// --- Initialize Components ---
	st := store.NewRESTStore(cfg.StoreURL, cfg.StoreAnonKey, cfg.StoreTimeout, log)
	res := resolver.New(st, log)
	ren := render.New(cfg.AutoOpen, log)
	srv := server.New(cfg, res, ren, log)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// --- Application Startup ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("tcrlinks is running")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// --- Wait for Shutdown Signal ---
	<-ctx.Done()
	stop()

	// --- Graceful Shutdown ---
	log.Info("Shutting down tcrlinks...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	log.Info("tcrlinks shut down gracefully.")
}
