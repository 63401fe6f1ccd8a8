package ports

import (
	"context"
	"html/template"

	"storefront/internal/features/hero/domain"
)

// DeckService defines the primary port for managing and rendering hero decks.
type DeckService interface {
	SaveDeck(ctx context.Context, deck domain.Deck) (*domain.Deck, error)
	GetDeck(ctx context.Context, name string) (*domain.Deck, error)
	DeleteDeck(ctx context.Context, name string) error
	ListDecks(ctx context.Context) ([]string, error)
	// RenderDeck renders the banner of a stored deck positioned at index.
	RenderDeck(ctx context.Context, name string, index int) (template.HTML, error)
	// EnsureDeck stores deck unless a deck with the same name exists. It reports whether it did.
	EnsureDeck(ctx context.Context, deck domain.Deck) (bool, error)
}

// DeckRepository defines the secondary port for deck storage.
type DeckRepository interface {
	Save(ctx context.Context, deck *domain.Deck) error
	// Get returns domain.ErrDeckNotFound when no deck is stored under name.
	Get(ctx context.Context, name string) (*domain.Deck, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// Snapshotter captures rendered banners as PNG images, one per slide.
type Snapshotter interface {
	Snapshot(ctx context.Context, deck string, slides int) ([][]byte, error)
}
