package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"storefront/internal/core/proxy"
	heroadapter "storefront/internal/features/hero/adapters"
	"storefront/internal/features/hero/domain"
	"storefront/internal/features/hero/ports"
	imageservice "storefront/internal/features/images/service"

	"github.com/spf13/cobra"
)

var (
	snapshotName string
	snapshotOut  string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture every slide of a deck as PNG",
	Long: `Capture every slide of a deck as PNG through a headless browser. The banner is
loaded from the running API server at PUBLIC_URL.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.close()

		deck, err := b.decks.GetDeck(cmd.Context(), snapshotName)
		if err != nil {
			return err
		}

		hosts, err := imageservice.ParseRemoteHosts(b.cfg.Images.RemoteHosts)
		if err != nil {
			return err
		}
		allowed := make([]string, 0, len(hosts))
		for _, h := range hosts {
			allowed = append(allowed, h.Hostname)
		}

		snapshotter, err := heroadapter.NewRodSnapshotter(b.cfg.PublicURL, proxy.FromConfig(b.cfg.Proxy), b.cfg.Snapshot, allowed...)
		if err != nil {
			return err
		}

		files, err := captureDeck(cmd.Context(), snapshotter, snapshotOut, deck)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		if len(files) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "deck %q has no slides\n", deck.Name)
		}
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotName, "name", "n", "", "Deck name")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", ".", "Output directory")
	_ = snapshotCmd.MarkFlagRequired("name")
}

// captureDeck snapshots every slide of deck into dir.
func captureDeck(ctx context.Context, s ports.Snapshotter, dir string, deck *domain.Deck) ([]string, error) {
	shots, err := s.Snapshot(ctx, deck.Name, len(deck.Slides))
	if err != nil {
		return nil, fmt.Errorf("snapshot of deck %q failed: %w", deck.Name, err)
	}
	return writeSnapshots(dir, deck.Name, shots)
}

// writeSnapshots stores shots as <dir>/<deck>-<index>.png and returns the written paths.
func writeSnapshots(dir, deck string, shots [][]byte) ([]string, error) {
	if len(shots) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := make([]string, 0, len(shots))
	for i, png := range shots {
		path := filepath.Join(dir, fmt.Sprintf("%s-%d.png", deck, i))
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return files, fmt.Errorf("failed to write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}
