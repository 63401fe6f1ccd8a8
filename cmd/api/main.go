package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"storefront/internal/core/cache"
	"storefront/internal/core/clock"
	"storefront/internal/core/config"
	"storefront/internal/core/httpclient"
	"storefront/internal/core/identity"
	"storefront/internal/core/logger"
	"storefront/internal/core/server"
	accounthandler "storefront/internal/features/account/handler"
	heroadapter "storefront/internal/features/hero/adapters"
	herodomain "storefront/internal/features/hero/domain"
	herohandler "storefront/internal/features/hero/handler"
	"storefront/internal/features/hero/render"
	heroservice "storefront/internal/features/hero/service"
	imagehandler "storefront/internal/features/images/handler"
	imageservice "storefront/internal/features/images/service"
	pagehandler "storefront/internal/features/pages/handler"

	"go.uber.org/zap"
)

// @title Storefront API
// @version 1.0
// @description Storefront home page, hero banner decks with live sessions, remote images and the signed-in account.
// @contact.name API Support
// @contact.email support@storefront.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		logger.Masked("identity_signing_key", cfg.Identity.SigningKey),
		logger.Masked("datastore_anon_key", cfg.DataStore.AnonKey),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Invalid Redis configuration", zap.Error(err))
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Images
	loader, err := imageservice.NewLoader(cfg.Images, httpclient.NewClient(15*time.Second))
	if err != nil {
		l.Fatal("Invalid image host configuration", zap.Error(err))
	}
	imageHdl := imagehandler.NewImageHandler(loader, cfg.Images.CacheMaxAge)

	// Hero decks
	renderer, err := render.New(loader.URLFor)
	if err != nil {
		l.Fatal("Failed to parse hero templates", zap.Error(err))
	}

	clk := clock.New()
	interval := time.Duration(cfg.Hero.IntervalMillis) * time.Millisecond
	deckRepo := heroadapter.NewRedisDeckRepository(store)
	deckService := heroservice.NewDeckService(deckRepo, renderer, clk, interval)

	if cfg.Hero.SeedSample {
		created, err := deckService.EnsureDeck(ctx, herodomain.SampleDeck(cfg.Hero.DefaultDeck))
		if err != nil {
			l.Fatal("Failed to seed default deck", zap.Error(err))
		}
		if created {
			l.Info("Seeded sample deck", zap.String("deck", cfg.Hero.DefaultDeck))
		}
	}

	hub := heroservice.NewHub(deckRepo, renderer, clk, interval)
	defer hub.CloseAll()

	deckHdl := herohandler.NewDeckHandler(deckService)
	liveHdl := herohandler.NewLiveHandler(hub)

	pageHdl, err := pagehandler.NewPageHandler(deckService, cfg.Hero.DefaultDeck)
	if err != nil {
		l.Fatal("Failed to parse page templates", zap.Error(err))
	}

	// Identity and account
	verifier := identity.NewVerifier(cfg.Identity)
	if !verifier.Enabled() {
		l.Warn("Identity signing key missing, every request is anonymous")
	}
	accountHdl := accounthandler.NewAccountHandler(cfg.DataStore)

	srv := server.New(cfg)
	srv.AddHealthCheck("redis", store.Ping)
	srv.App.Use(verifier.Middleware())

	// Register Routes
	srv.App.Get("/", pageHdl.Home)
	srv.App.Get("/images", imageHdl.GetImage)
	srv.App.Get("/account", accountHdl.GetAccount)
	deckHdl.Register(srv.App)
	liveHdl.Register(srv.App)

	l.Info("Routes registered",
		zap.String("public_url", cfg.PublicURL),
		zap.Strings("image_hosts", strings.Split(cfg.Images.RemoteHosts, ",")),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	case <-ctx.Done():
		hub.CloseAll()
		if err := srv.Shutdown(10 * time.Second); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}
}
