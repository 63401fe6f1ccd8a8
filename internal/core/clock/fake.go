package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Ticks are delivered synchronously from Advance: each send
// blocks until the ticker's consumer receives it or the ticker is stopped.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
	created int
}

// NewFake returns a Fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// NewTicker registers a ticker firing every d of fake time.
func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTicker{
		clock:  f,
		c:      make(chan time.Time),
		done:   make(chan struct{}),
		period: d,
		next:   f.now.Add(d),
	}
	f.tickers = append(f.tickers, t)
	f.created++
	return t
}

// Advance moves the clock forward by d, firing every tick that falls due in order.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)

	for {
		t := f.earliestDue(target)
		if t == nil {
			f.now = target
			f.mu.Unlock()
			return
		}

		f.now = t.next
		t.next = t.next.Add(t.period)
		now := f.now
		f.mu.Unlock()

		select {
		case t.c <- now:
		case <-t.done:
		}

		f.mu.Lock()
	}
}

// Active reports how many tickers are currently running.
func (f *Fake) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// Created reports how many tickers were ever created.
func (f *Fake) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

func (f *Fake) earliestDue(target time.Time) *fakeTicker {
	var due *fakeTicker
	for _, t := range f.tickers {
		if t.next.After(target) {
			continue
		}
		if due == nil || t.next.Before(due.next) {
			due = t
		}
	}
	return due
}

func (f *Fake) remove(t *fakeTicker) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, candidate := range f.tickers {
		if candidate == t {
			f.tickers = append(f.tickers[:i], f.tickers[i+1:]...)
			close(t.done)
			return
		}
	}
}

type fakeTicker struct {
	clock  *Fake
	c      chan time.Time
	done   chan struct{}
	period time.Duration
	next   time.Time
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.c
}

func (t *fakeTicker) Stop() {
	t.clock.remove(t)
}
