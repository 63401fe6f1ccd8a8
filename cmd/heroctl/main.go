package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/core/cache"
	"storefront/internal/core/clock"
	"storefront/internal/core/config"
	"storefront/internal/core/logger"
	heroadapter "storefront/internal/features/hero/adapters"
	"storefront/internal/features/hero/render"
	heroservice "storefront/internal/features/hero/service"

	"github.com/spf13/cobra"
)

// envDir is where the .env file is looked up.
var envDir string

var rootCmd = &cobra.Command{
	Use:   "heroctl",
	Short: "Operate storefront hero banner decks",
	Long: `heroctl manages the hero banner decks of a storefront deployment.
It reads the same configuration as the API server. The data store settings
(DATASTORE_URL, DATASTORE_ANON_KEY) are not needed.`,
	SilenceUsage: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "Directory containing the .env file")
	rootCmd.AddCommand(seedCmd, snapshotCmd)
}

// backend is what the subcommands operate on.
type backend struct {
	cfg   *config.AppConfig
	repo  *heroadapter.RedisDeckRepository
	decks *heroservice.DeckServiceImpl
	close func()
}

func openBackend(ctx context.Context) (*backend, error) {
	cfg, err := config.LoadOperator(envDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	store, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	renderer, err := render.New(nil)
	if err != nil {
		store.Close()
		return nil, err
	}

	repo := heroadapter.NewRedisDeckRepository(store)
	interval := time.Duration(cfg.Hero.IntervalMillis) * time.Millisecond

	return &backend{
		cfg:   cfg,
		repo:  repo,
		decks: heroservice.NewDeckService(repo, renderer, clock.New(), interval),
		close: func() {
			store.Close()
			logger.Sync()
		},
	}, nil
}
