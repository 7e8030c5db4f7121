package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/emberfell/campaign-api/internal/config"
	"github.com/emberfell/campaign-api/internal/engine/combat"
	v1 "github.com/emberfell/campaign-api/internal/handlers/api/v1"
	"github.com/emberfell/campaign-api/internal/orchestrators/encounter"
	"github.com/emberfell/campaign-api/internal/pkg/clock"
	"github.com/emberfell/campaign-api/internal/pkg/idgen"
	"github.com/emberfell/campaign-api/internal/redis"
	"github.com/emberfell/campaign-api/internal/repositories/campaigns"
	"github.com/emberfell/campaign-api/internal/repositories/encounters"
)

var httpAddr string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the campaign API server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&httpAddr, "http-addr", "", "listen address (overrides HTTP_ADDR)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	redisClient, err := redis.NewClient(cfg.RedisAddr, &redis.Options{Password: cfg.RedisPassword})
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}()

	encounterRepo, err := encounters.NewRedis(&encounters.RedisConfig{Client: redisClient})
	if err != nil {
		return err
	}

	db, err := campaigns.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return err
	}
	campaignRepo, err := campaigns.NewGorm(db)
	if err != nil {
		return err
	}

	engine, err := combat.New(&combat.Config{
		CombatantIDs: idgen.NewPrefixed(idgen.PrefixCombatant),
		EffectIDs:    idgen.NewUUID(idgen.PrefixEffect),
	})
	if err != nil {
		return err
	}

	encounterService, err := encounter.New(&encounter.Config{
		Repository:   encounterRepo,
		Engine:       engine,
		EncounterIDs: idgen.NewPrefixed(idgen.PrefixEncounter),
		Clock:        clock.New(),
		Logger:       log,
	})
	if err != nil {
		return err
	}

	handler, err := v1.NewHandler(&v1.Config{
		Encounters:  encounterService,
		Campaigns:   campaignRepo,
		CampaignIDs: idgen.NewPrefixed(idgen.PrefixCampaign),
		Clock:       clock.New(),
		Logger:      log,
	})
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown timed out, closing", "error", err)
			return srv.Close()
		}

		log.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(h), nil
}
