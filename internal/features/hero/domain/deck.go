package domain

import (
	"regexp"
	"time"
)

var deckNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Deck is a named, stored slide deck together with its display settings.
type Deck struct {
	Name           string    `json:"name" yaml:"name"`
	Slides         []Slide   `json:"slides" yaml:"slides"`
	AutoPlay       *bool     `json:"auto_play,omitempty" yaml:"auto_play,omitempty"`
	IntervalMillis int       `json:"interval_ms,omitempty" yaml:"interval_ms,omitempty"`
	ShowNavigation *bool     `json:"show_navigation,omitempty" yaml:"show_navigation,omitempty"`
	ShowIndicators *bool     `json:"show_indicators,omitempty" yaml:"show_indicators,omitempty"`
	Height         Height    `json:"height,omitempty" yaml:"height,omitempty"`
	ClassName      string    `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	UpdatedAt      time.Time `json:"updated_at" yaml:"-"`
}

// ValidDeckName reports whether name can be used as a deck key.
func ValidDeckName(name string) bool {
	return deckNamePattern.MatchString(name)
}

// Config resolves the deck into a banner configuration, falling back to the defaults for every
// unset field. fallbackInterval is used when the deck does not set one.
func (d Deck) Config(fallbackInterval time.Duration) Config {
	cfg := DefaultConfig(d.Slides)
	if fallbackInterval > 0 {
		cfg.Interval = fallbackInterval
	}
	if d.AutoPlay != nil {
		cfg.AutoPlay = *d.AutoPlay
	}
	if d.IntervalMillis != 0 {
		cfg.Interval = time.Duration(d.IntervalMillis) * time.Millisecond
	}
	if d.ShowNavigation != nil {
		cfg.ShowNavigation = *d.ShowNavigation
	}
	if d.ShowIndicators != nil {
		cfg.ShowIndicators = *d.ShowIndicators
	}
	if d.Height != "" {
		cfg.Height = d.Height
	}
	cfg.ClassName = d.ClassName
	return cfg
}
