package domain

import "time"

// Config holds the construction-time parameters of a banner instance.
type Config struct {
	Slides         []Slide
	AutoPlay       bool
	Interval       time.Duration
	ShowNavigation bool
	ShowIndicators bool
	Height         Height
	// ClassName is appended to the banner's root element classes.
	ClassName string
}

// DefaultConfig returns the default banner configuration for slides.
func DefaultConfig(slides []Slide) Config {
	return Config{
		Slides:         slides,
		AutoPlay:       true,
		Interval:       DefaultInterval,
		ShowNavigation: true,
		ShowIndicators: true,
		Height:         HeightLarge,
	}
}

// Validate rejects configurations the banner cannot run with.
func (c Config) Validate() error {
	if !c.Height.Valid() {
		return ErrInvalidHeight
	}
	if c.Interval <= 0 {
		return ErrInvalidInterval
	}
	return ValidateSlides(c.Slides)
}

// Phase is the banner's position in its state machine.
type Phase string

const (
	// PhaseEmpty has no slides; nothing renders and no timer ever exists.
	PhaseEmpty Phase = "EMPTY"
	// PhaseSingle has one slide; no timer ever exists.
	PhaseSingle Phase = "SINGLE"
	// PhaseCyclingAuto advances on every tick.
	PhaseCyclingAuto Phase = "CYCLING_AUTO"
	// PhaseCyclingManual only moves on manual navigation.
	PhaseCyclingManual Phase = "CYCLING_MANUAL"
)

// PhaseOf derives the phase for a deck length and auto-advance flag.
func PhaseOf(length int, autoPlay bool) Phase {
	switch {
	case length == 0:
		return PhaseEmpty
	case length == 1:
		return PhaseSingle
	case autoPlay:
		return PhaseCyclingAuto
	default:
		return PhaseCyclingManual
	}
}

// State is a snapshot of a banner instance.
type State struct {
	Index    int   `json:"index"`
	AutoPlay bool  `json:"auto_play"`
	Len      int   `json:"len"`
	Phase    Phase `json:"phase"`
}

// Empty reports whether there is nothing to render.
func (s State) Empty() bool {
	return s.Len == 0
}

// View pairs a configuration with the state it was taken at, which is all a renderer needs.
type View struct {
	Config Config
	State  State
}

// Current returns the slide at the current index, or false when the deck is empty.
func (v View) Current() (Slide, bool) {
	if v.State.Empty() || v.State.Index < 0 || v.State.Index >= len(v.Config.Slides) {
		return Slide{}, false
	}
	return v.Config.Slides[v.State.Index], true
}
