package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/core/clock"
	"storefront/internal/core/logger"
	"storefront/internal/features/hero/carousel"
	"storefront/internal/features/hero/domain"
	"storefront/internal/features/hero/ports"
	"storefront/internal/features/hero/render"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// updateBuffer bounds how many frames a session queues for a slow client. The oldest frame is
// dropped first; only the latest state matters.
const updateBuffer = 8

// ErrUnknownAction is returned for commands the live session does not understand.
var ErrUnknownAction = errors.New("unknown action")

// Command is a navigation request sent by a live client.
type Command struct {
	Action string `json:"action"`
	Index  int    `json:"index"`
}

// Update is one frame pushed to a live client.
type Update struct {
	Index    int          `json:"index"`
	AutoPlay bool         `json:"auto_play"`
	Phase    domain.Phase `json:"phase"`
	HTML     string       `json:"html"`
}

// Hub owns the live banner sessions, one banner instance per connected client.
type Hub struct {
	repo     ports.DeckRepository
	renderer *render.Renderer
	clock    clock.Clock
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHub creates a Hub.
func NewHub(repo ports.DeckRepository, renderer *render.Renderer, clk clock.Clock, interval time.Duration) *Hub {
	return &Hub{
		repo:     repo,
		renderer: renderer,
		clock:    clk,
		interval: interval,
		logger:   logger.Get().Named("hero_hub"),
		sessions: make(map[string]*Session),
	}
}

// Open mounts a new banner instance for the named deck.
func (h *Hub) Open(ctx context.Context, name string) (*Session, error) {
	deck, err := h.repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("hub: failed to load deck: %w", err)
	}

	c, err := carousel.New(deck.Config(h.interval), h.clock)
	if err != nil {
		return nil, fmt.Errorf("hub: invalid deck %s: %w", name, err)
	}

	s := &Session{
		ID:       uuid.NewString(),
		Deck:     name,
		hub:      h,
		carousel: c,
		updates:  make(chan Update, updateBuffer),
	}
	s.unsubscribe = c.Subscribe(carousel.ObserverFunc(s.push))

	h.mu.Lock()
	h.sessions[s.ID] = s
	active := len(h.sessions)
	h.mu.Unlock()

	h.logger.Info("Live banner session opened",
		zap.String("session_id", s.ID),
		zap.String("deck", name),
		zap.Int("active_sessions", active),
	)

	return s, nil
}

// Active reports the number of open sessions.
func (h *Hub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CloseAll unmounts every open session.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	active := len(h.sessions)
	h.mu.Unlock()

	h.logger.Info("Live banner session closed",
		zap.String("session_id", s.ID),
		zap.String("deck", s.Deck),
		zap.Int("active_sessions", active),
	)
}

// Session is one mounted banner instance driven by a remote client.
type Session struct {
	ID   string
	Deck string

	hub         *Hub
	carousel    *carousel.Carousel
	updates     chan Update
	unsubscribe func()
	closeOnce   sync.Once
}

// Updates delivers a frame after every state change. It is closed by Close.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Current renders the session's present state, used as the first frame.
func (s *Session) Current() (Update, error) {
	return s.frame(s.carousel.View())
}

// State returns the banner state.
func (s *Session) State() domain.State {
	return s.carousel.State()
}

// Handle applies a client command. All of them are manual navigation.
func (s *Session) Handle(cmd Command) error {
	switch cmd.Action {
	case "next":
		return s.carousel.Next()
	case "prev":
		return s.carousel.Previous()
	case "goto":
		return s.carousel.SetIndex(cmd.Index)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
}

// Close unmounts the banner instance, releasing its timer.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.unsubscribe()
		s.carousel.Close()
		close(s.updates)
		s.hub.remove(s)
	})
}

// push runs inside the carousel's notification and never blocks.
func (s *Session) push(view domain.View) {
	u, err := s.frame(view)
	if err != nil {
		s.hub.logger.Error("Failed to render live frame", zap.String("session_id", s.ID), zap.Error(err))
		return
	}

	select {
	case s.updates <- u:
		return
	default:
	}

	select {
	case <-s.updates:
	default:
	}
	s.updates <- u
}

func (s *Session) frame(view domain.View) (Update, error) {
	html, err := s.hub.renderer.RenderDeck(s.Deck, view)
	if err != nil {
		return Update{}, err
	}
	return Update{
		Index:    view.State.Index,
		AutoPlay: view.State.AutoPlay,
		Phase:    view.State.Phase,
		HTML:     string(html),
	}, nil
}
