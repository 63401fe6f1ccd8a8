package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"time"

	"storefront/internal/core/clock"
	"storefront/internal/features/hero/domain"
	"storefront/internal/features/hero/ports"
	"storefront/internal/features/hero/render"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// DeckServiceImpl implements ports.DeckService.
type DeckServiceImpl struct {
	repo     ports.DeckRepository
	renderer *render.Renderer
	clock    clock.Clock
	policy   *bluemonday.Policy
	// interval is used for decks that do not set their own.
	interval time.Duration
}

// NewDeckService creates a new DeckServiceImpl.
func NewDeckService(repo ports.DeckRepository, renderer *render.Renderer, clk clock.Clock, interval time.Duration) *DeckServiceImpl {
	return &DeckServiceImpl{
		repo:     repo,
		renderer: renderer,
		clock:    clk,
		policy:   bluemonday.StrictPolicy(),
		interval: interval,
	}
}

// SaveDeck normalizes, validates and stores a deck. Slides without an ID get a generated one and
// markup is stripped from every display text.
func (s *DeckServiceImpl) SaveDeck(ctx context.Context, deck domain.Deck) (*domain.Deck, error) {
	if !domain.ValidDeckName(deck.Name) {
		return nil, domain.ErrInvalidDeckName
	}

	normalized := s.normalize(deck)
	if err := normalized.Config(s.interval).Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, &normalized); err != nil {
		return nil, fmt.Errorf("service: failed to save deck: %w", err)
	}

	return &normalized, nil
}

// GetDeck retrieves a stored deck.
func (s *DeckServiceImpl) GetDeck(ctx context.Context, name string) (*domain.Deck, error) {
	deck, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get deck: %w", err)
	}
	return deck, nil
}

// DeleteDeck removes a stored deck.
func (s *DeckServiceImpl) DeleteDeck(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("service: failed to delete deck: %w", err)
	}
	return nil
}

// ListDecks lists the stored deck names.
func (s *DeckServiceImpl) ListDecks(ctx context.Context) ([]string, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list decks: %w", err)
	}
	return names, nil
}

// RenderDeck renders the stored deck's banner as it looks at index before any interaction.
func (s *DeckServiceImpl) RenderDeck(ctx context.Context, name string, index int) (template.HTML, error) {
	deck, err := s.GetDeck(ctx, name)
	if err != nil {
		return "", err
	}

	cfg := deck.Config(s.interval)
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	n := len(cfg.Slides)
	if n == 0 {
		return "", nil
	}
	if index < 0 || index >= n {
		return "", domain.ErrIndexOutOfRange
	}

	view := domain.View{
		Config: cfg,
		State: domain.State{
			Index:    index,
			AutoPlay: cfg.AutoPlay,
			Len:      n,
			Phase:    domain.PhaseOf(n, cfg.AutoPlay),
		},
	}
	return s.renderer.RenderDeck(name, view)
}

// EnsureDeck saves deck only when nothing is stored under its name yet.
func (s *DeckServiceImpl) EnsureDeck(ctx context.Context, deck domain.Deck) (bool, error) {
	_, err := s.repo.Get(ctx, deck.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrDeckNotFound) {
		return false, fmt.Errorf("service: failed to check deck: %w", err)
	}

	if _, err := s.SaveDeck(ctx, deck); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DeckServiceImpl) normalize(deck domain.Deck) domain.Deck {
	out := deck
	out.Slides = make([]domain.Slide, len(deck.Slides))
	for i, slide := range deck.Slides {
		if slide.ID == "" {
			slide.ID = uuid.NewString()
		}
		slide.ImageAlt = s.plain(slide.ImageAlt)
		slide.Title = s.plain(slide.Title)
		slide.Subtitle = s.plain(slide.Subtitle)
		if slide.CTA != nil {
			cta := *slide.CTA
			cta.Text = s.plain(cta.Text)
			slide.CTA = &cta
		}
		out.Slides[i] = slide
	}
	out.UpdatedAt = s.clock.Now().UTC()
	return out
}

// plain strips markup. Entities are decoded again since templates escape on output.
func (s *DeckServiceImpl) plain(text string) string {
	return html.UnescapeString(s.policy.Sanitize(text))
}
