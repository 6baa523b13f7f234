package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgeline/rfq-service/internal/app/background"
	"github.com/forgeline/rfq-service/internal/app/setup"
	"github.com/forgeline/rfq-service/internal/config"
	httpdelivery "github.com/forgeline/rfq-service/internal/delivery/http"
	"github.com/forgeline/rfq-service/internal/delivery/http/handlers"
	"github.com/forgeline/rfq-service/internal/infrastructure/migrate"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	cfg := deps.Config

	setupLogger(cfg)

	if cfg.RFQDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(deps.DB, cfg.RFQDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	usecases := setup.InitializeUsecases(deps)

	negotiationHandler := handlers.NewNegotiationHandler(usecases.Negotiations, usecases.Offers)
	ruleHandler := handlers.NewRuleHandler(usecases.Rules)
	rateHandler := handlers.NewRateHandler(usecases.Currency)
	router := httpdelivery.NewRouter(negotiationHandler, ruleHandler, rateHandler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tasks := background.NewBackgroundTasks(usecases.Negotiations, cfg.Sweep.ExpiryInterval)
	tasks.StartAll(ctx)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		slog.Info("rfq service started", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	if err := deps.NotificationPublisher.Close(); err != nil {
		slog.Error("closing notification publisher", "error", err)
	}
}

func setupLogger(cfg *config.RFQConfig) {
	level := slog.LevelInfo
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogConfig.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
