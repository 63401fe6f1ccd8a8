package main

import (
	"fmt"
	"os"

	"storefront/internal/features/hero/domain"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	seedFile  string
	seedName  string
	seedForce bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store a deck from a YAML file",
	Long: `Store a deck from a YAML file. An existing deck with the same name is kept
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		deck, err := loadDeckFile(seedFile, seedName)
		if err != nil {
			return err
		}

		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.close()

		if !seedForce {
			created, err := b.decks.EnsureDeck(cmd.Context(), deck)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "deck %q exists, use --force to replace it\n", deck.Name)
				return nil
			}
		} else if _, err := b.decks.SaveDeck(cmd.Context(), deck); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "stored deck %q with %d slides\n", deck.Name, len(deck.Slides))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML deck file")
	seedCmd.Flags().StringVarP(&seedName, "name", "n", "", "Deck name (overrides the name in the file)")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Replace an existing deck")
	_ = seedCmd.MarkFlagRequired("file")
}

// loadDeckFile reads a deck from YAML. name, when set, replaces the deck's own name.
func loadDeckFile(path, name string) (domain.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("failed to read deck file: %w", err)
	}

	var deck domain.Deck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return domain.Deck{}, fmt.Errorf("failed to parse deck file: %w", err)
	}

	if name != "" {
		deck.Name = name
	}
	if !domain.ValidDeckName(deck.Name) {
		return domain.Deck{}, fmt.Errorf("%w: %q", domain.ErrInvalidDeckName, deck.Name)
	}

	return deck, nil
}
