// Command server runs the health assistant HTTP API.
//
// @title        Health Assistant API
// @version      1.0
// @description  Symptom analysis and health chat backed by a language model, with rule-based fallbacks.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tbourn/go-health-assistant/internal/config"
	"github.com/tbourn/go-health-assistant/internal/gateway"
	httpapi "github.com/tbourn/go-health-assistant/internal/http"
	"github.com/tbourn/go-health-assistant/internal/observability"
	"github.com/tbourn/go-health-assistant/internal/repo"
	"github.com/tbourn/go-health-assistant/internal/services"
	"github.com/tbourn/go-health-assistant/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn().Err(err).Msg("read .env")
	}
	cfg := config.MustLoad()
	sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)
	gin.SetMode(cfg.GinMode)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited gracefully")
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appVersion := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion,
		observability.LLMProviderKey.String(cfg.LLM.Provider))
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DB.Driver, cfg.DB.Path, cfg.DB.URL)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}

	gen, err := gateway.New(ctx, gateway.Config{
		Provider:          cfg.LLM.Provider,
		OpenRouterAPIKey:  cfg.LLM.OpenRouterAPIKey,
		OpenRouterBaseURL: cfg.LLM.OpenRouterBaseURL,
		Model:             cfg.LLM.Model,
		GeminiAPIKey:      cfg.LLM.GeminiAPIKey,
		GeminiModel:       cfg.LLM.GeminiModel,
		Timeout:           cfg.LLM.Timeout,
	})
	if err != nil {
		return err
	}
	defer gen.Close()
	if gen.Provider == gateway.ProviderOffline {
		log.Warn().Str("configured", cfg.LLM.Provider).Msg("no model credentials, serving fallback content only")
	}

	var (
		rec      services.ExchangeRecorder
		recorder *services.AsyncRecorder
	)
	if cfg.Chat.Persist {
		recorder = services.NewAsyncRecorder(services.NewChatLogService(db), cfg.Chat.PersistTimeout)
		rec = recorder
	}

	r := gin.New()
	if err := httpapi.RegisterRoutes(r, db, gen, rec, cfg); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", appVersion).
			Str("llm_provider", gen.Provider).
			Str("db_driver", cfg.DB.Driver).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(sctx)
		if recorder != nil {
			recorder.Wait()
		}
		return err
	})
	return g.Wait()
}
