// Package carousel implements the hero banner controller: the current slide, the auto-advance
// flag and the single recurring ticker that drives it.
//
// A Carousel is one banner instance. Ticks, manual navigation and reconfiguration are serialized
// on the instance and run to completion, observers included. Observers are called synchronously
// with the instance locked and must not call back into it.
package carousel

import (
	"errors"
	"sync"
	"time"

	"storefront/internal/core/clock"
	"storefront/internal/core/logger"
	"storefront/internal/features/hero/domain"

	"go.uber.org/zap"
)

// ErrClosed is returned by operations on a carousel that has been closed.
var ErrClosed = errors.New("carousel closed")

// Observer is notified after every state change.
type Observer interface {
	Notify(view domain.View)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(view domain.View)

// Notify calls f(view).
func (f ObserverFunc) Notify(view domain.View) {
	f(view)
}

// Carousel is the controller of one hero banner instance.
type Carousel struct {
	mu       sync.Mutex
	cfg      domain.Config
	clock    clock.Clock
	logger   *zap.Logger
	index    int
	autoPlay bool
	closed   bool

	// timer is non-nil exactly when auto-advance is live.
	timer *autoAdvance
	gen   uint64

	observers map[uint64]Observer
	nextObs   uint64
}

// autoAdvance is one armed ticker. gen identifies it so ticks from a cancelled ticker are dropped.
type autoAdvance struct {
	ticker clock.Ticker
	done   chan struct{}
	gen    uint64
}

func (a *autoAdvance) stop() {
	close(a.done)
	a.ticker.Stop()
}

// New validates cfg and starts a banner instance. The ticker is armed when auto-advance is
// enabled and the deck has more than one slide.
func New(cfg domain.Config, clk clock.Clock) (*Carousel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Slides = append([]domain.Slide(nil), cfg.Slides...)

	c := &Carousel{
		cfg:       cfg,
		clock:     clk,
		logger:    logger.Get().Named("carousel"),
		autoPlay:  cfg.AutoPlay,
		observers: make(map[uint64]Observer),
	}

	c.logger.Debug("Carousel created",
		zap.Int("slides", len(cfg.Slides)),
		zap.Bool("auto_play", cfg.AutoPlay),
		zap.Duration("interval", cfg.Interval),
		zap.String("height", string(cfg.Height)),
	)

	c.mu.Lock()
	c.reconcile()
	c.mu.Unlock()

	return c, nil
}

// SetIndex shows the slide at target and permanently disables auto-advance.
// Calling it with the current index only disables auto-advance.
func (c *Carousel) SetIndex(target int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	return c.navigate(target)
}

// Next moves to the following slide, wrapping from the last to the first.
func (c *Carousel) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	n := len(c.cfg.Slides)
	if n == 0 {
		return domain.ErrIndexOutOfRange
	}
	return c.navigate((c.index + 1) % n)
}

// Previous moves to the preceding slide, wrapping from the first to the last.
func (c *Carousel) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	n := len(c.cfg.Slides)
	if n == 0 {
		return domain.ErrIndexOutOfRange
	}
	prev := c.index - 1
	if prev < 0 {
		prev = n - 1
	}
	return c.navigate(prev)
}

// SetInterval changes the auto-advance interval, re-arming the ticker if one is live.
func (c *Carousel) SetInterval(d time.Duration) error {
	if d <= 0 {
		return domain.ErrInvalidInterval
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if d == c.cfg.Interval {
		return nil
	}
	c.cfg.Interval = d
	c.reconcile()
	return nil
}

// SetSlides replaces the deck. The index restarts at 0 when it falls outside the new deck.
func (c *Carousel) SetSlides(slides []domain.Slide) error {
	if err := domain.ValidateSlides(slides); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	prevLen := len(c.cfg.Slides)
	c.cfg.Slides = append([]domain.Slide(nil), slides...)
	if c.index >= len(slides) {
		c.index = 0
	}
	if len(slides) != prevLen {
		c.reconcile()
	}
	c.notify()
	return nil
}

// Subscribe registers o for state-change notifications and returns a function removing it.
func (c *Carousel) Subscribe(o Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObs
	c.nextObs++
	if !c.closed {
		c.observers[id] = o
	}

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// State returns a snapshot of the current state.
func (c *Carousel) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

// View returns the current configuration and state together.
func (c *Carousel) View() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

// Close releases the ticker and drops every observer. It is safe to call more than once.
func (c *Carousel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.reconcile()
	c.observers = map[uint64]Observer{}
	c.logger.Debug("Carousel closed")
}

// navigate is the manual path: set the index and turn auto-advance off for good.
func (c *Carousel) navigate(target int) error {
	if target < 0 || target >= len(c.cfg.Slides) {
		return domain.ErrIndexOutOfRange
	}

	c.logger.Debug("Manual slide change", zap.Int("from", c.index), zap.Int("to", target))

	c.index = target
	if c.autoPlay {
		c.autoPlay = false
		c.reconcile()
	}
	c.notify()
	return nil
}

// advance is the ticker path. It never touches the auto-advance flag.
func (c *Carousel) advance(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer == nil || c.timer.gen != gen {
		return
	}

	next := (c.index + 1) % len(c.cfg.Slides)
	c.logger.Debug("Auto slide change", zap.Int("from", c.index), zap.Int("to", next))
	c.index = next
	c.notify()
}

// reconcile cancels any live ticker and arms a new one if auto-advance still applies.
// Callers hold c.mu.
func (c *Carousel) reconcile() {
	if c.timer != nil {
		c.timer.stop()
		c.timer = nil
		c.logger.Debug("Auto-advance timer cleared")
	}

	if c.closed || !c.autoPlay || len(c.cfg.Slides) <= 1 {
		return
	}

	c.gen++
	a := &autoAdvance{
		ticker: c.clock.NewTicker(c.cfg.Interval),
		done:   make(chan struct{}),
		gen:    c.gen,
	}
	c.timer = a
	c.logger.Debug("Auto-advance timer set", zap.Duration("interval", c.cfg.Interval))

	go c.run(a)
}

func (c *Carousel) run(a *autoAdvance) {
	for {
		select {
		case <-a.done:
			return
		case <-a.ticker.C():
			c.advance(a.gen)
		}
	}
}

func (c *Carousel) notify() {
	if len(c.observers) == 0 {
		return
	}
	v := c.view()
	for _, o := range c.observers {
		o.Notify(v)
	}
}

func (c *Carousel) state() domain.State {
	return domain.State{
		Index:    c.index,
		AutoPlay: c.autoPlay,
		Len:      len(c.cfg.Slides),
		Phase:    domain.PhaseOf(len(c.cfg.Slides), c.autoPlay),
	}
}

// view hands out a copy of the deck so observers cannot reach the live slides.
func (c *Carousel) view() domain.View {
	cfg := c.cfg
	cfg.Slides = make([]domain.Slide, len(c.cfg.Slides))
	for i, s := range c.cfg.Slides {
		if s.CTA != nil {
			cta := *s.CTA
			s.CTA = &cta
		}
		cfg.Slides[i] = s
	}
	return domain.View{Config: cfg, State: c.state()}
}
