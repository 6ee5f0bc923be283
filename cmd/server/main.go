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

	"github.com/Lixing-Zhang/menu-board/internal/config"
	"github.com/Lixing-Zhang/menu-board/internal/handlers"
	"github.com/Lixing-Zhang/menu-board/internal/menu"
	"github.com/Lixing-Zhang/menu-board/internal/middleware"
	"github.com/Lixing-Zhang/menu-board/internal/repository"
	"github.com/Lixing-Zhang/menu-board/internal/service"
	"github.com/Lixing-Zhang/menu-board/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting menu board api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"menu_source", cfg.Menu.Source,
	)

	source, err := menu.NewSource(cfg.Menu.Source, time.Duration(cfg.Menu.Timeout)*time.Second, cfg.Menu.MaxBytes)
	if err != nil {
		log.Error("invalid menu source", "error", err)
		os.Exit(1)
	}

	menuRepo := repository.NewInMemoryMenuRepository()
	menuService := service.NewMenuService(menu.NewLoader(source), menuRepo, log, time.Duration(cfg.Menu.Timeout)*time.Second)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// A failed first load leaves the API up with an empty menu
	if _, err := menuService.Reload(ctx); err != nil {
		log.Warn("initial menu load failed, serving without a menu until reload", "error", err)
	}

	var watcher *service.Watcher
	if fileSource, ok := source.(*menu.FileSource); ok && cfg.Menu.Watch {
		watcher, err = service.NewWatcher(fileSource.Path(), menuService, log)
		if err != nil {
			log.Error("failed to create menu watcher", "error", err)
			os.Exit(1)
		}
		if err := watcher.Start(ctx); err != nil {
			log.Warn("menu watcher not started", "error", err)
		}
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(menuService, log)
	menuHandler := handlers.NewMenuHandler(menuService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.APIKeyHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Mount("/api/menu", menuHandler.Routes(middleware.APIKeyAuth(cfg.Auth)))

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	if watcher != nil {
		watcher.Stop()
	}
	stop()

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
