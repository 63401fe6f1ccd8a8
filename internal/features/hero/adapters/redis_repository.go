package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/core/cache"
	"storefront/internal/features/hero/domain"
)

const (
	deckKeyPrefix = "hero:deck:"
	deckIndexKey  = "hero:decks"
)

// RedisDeckRepository implements ports.DeckRepository on top of the cache port.
type RedisDeckRepository struct {
	cache cache.Cache
}

// NewRedisDeckRepository creates a new RedisDeckRepository.
func NewRedisDeckRepository(c cache.Cache) *RedisDeckRepository {
	return &RedisDeckRepository{
		cache: c,
	}
}

func deckKey(name string) string {
	return deckKeyPrefix + name
}

// Save stores the deck and records its name in the deck index.
func (r *RedisDeckRepository) Save(ctx context.Context, deck *domain.Deck) error {
	data, err := json.Marshal(deck)
	if err != nil {
		return fmt.Errorf("failed to marshal deck: %w", err)
	}

	if err := r.cache.Set(ctx, deckKey(deck.Name), data, 0); err != nil {
		return fmt.Errorf("failed to save deck to cache: %w", err)
	}

	if err := r.cache.AddMember(ctx, deckIndexKey, deck.Name); err != nil {
		return fmt.Errorf("failed to index deck: %w", err)
	}

	return nil
}

// Get retrieves a deck by name.
func (r *RedisDeckRepository) Get(ctx context.Context, name string) (*domain.Deck, error) {
	data, err := r.cache.Get(ctx, deckKey(name))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDeckNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck from cache: %w", err)
	}

	var deck domain.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deck: %w", err)
	}

	return &deck, nil
}

// Delete removes the deck and its index entry.
func (r *RedisDeckRepository) Delete(ctx context.Context, name string) error {
	if err := r.cache.Delete(ctx, deckKey(name)); err != nil {
		return fmt.Errorf("failed to delete deck from cache: %w", err)
	}
	if err := r.cache.RemoveMember(ctx, deckIndexKey, name); err != nil {
		return fmt.Errorf("failed to unindex deck: %w", err)
	}
	return nil
}

// List returns the stored deck names in lexical order.
func (r *RedisDeckRepository) List(ctx context.Context) ([]string, error) {
	names, err := r.cache.Members(ctx, deckIndexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	return names, nil
}
