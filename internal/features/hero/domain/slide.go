package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Height is the display height class of a hero banner.
type Height string

const (
	HeightSmall      Height = "sm"
	HeightMedium     Height = "md"
	HeightLarge      Height = "lg"
	HeightExtraLarge Height = "xl"
)

// DefaultInterval is the auto-advance interval used when none is configured.
const DefaultInterval = 5000 * time.Millisecond

var heightClasses = map[Height]string{
	HeightSmall:      "h-64 md:h-80",
	HeightMedium:     "h-80 md:h-96",
	HeightLarge:      "h-96 md:h-[500px]",
	HeightExtraLarge: "h-[500px] md:h-[600px]",
}

var (
	ErrInvalidHeight       = errors.New("invalid height class")
	ErrInvalidInterval     = errors.New("auto-advance interval must be positive")
	ErrInvalidCallToAction = errors.New("call to action needs both text and link")
	ErrMissingImageURL     = errors.New("slide image url is required")
	ErrMissingImageAlt     = errors.New("slide image alt text is required")
	ErrMissingTitle        = errors.New("slide title is required")
	ErrMissingSlideID      = errors.New("slide id is required")
	ErrDuplicateSlideID    = errors.New("duplicate slide id")
	ErrIndexOutOfRange     = errors.New("slide index out of range")
	ErrDeckNotFound        = errors.New("deck not found")
	ErrInvalidDeckName     = errors.New("invalid deck name")
)

// Valid reports whether h is one of the known height classes.
func (h Height) Valid() bool {
	_, ok := heightClasses[h]
	return ok
}

// Classes returns the CSS classes for the height. Unknown heights fall back to large.
func (h Height) Classes() string {
	if c, ok := heightClasses[h]; ok {
		return c
	}
	return heightClasses[HeightLarge]
}

// CallToAction is the optional button on a slide.
type CallToAction struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// Slide is one promotable item of a hero banner.
type Slide struct {
	// ID is unique within a deck and only used as a rendering key.
	ID       string `json:"id" yaml:"id"`
	ImageURL string `json:"image_url" yaml:"image_url"`
	ImageAlt string `json:"image_alt" yaml:"image_alt"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	// CTA is nil when the slide has no call to action.
	CTA *CallToAction `json:"cta,omitempty" yaml:"cta,omitempty"`
	// Priority asks the renderer to load the image eagerly.
	Priority bool `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Validate checks the slide's own fields.
func (s Slide) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrMissingSlideID
	}
	if strings.TrimSpace(s.ImageURL) == "" {
		return fmt.Errorf("slide %q: %w", s.ID, ErrMissingImageURL)
	}
	if strings.TrimSpace(s.ImageAlt) == "" {
		return fmt.Errorf("slide %q: %w", s.ID, ErrMissingImageAlt)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("slide %q: %w", s.ID, ErrMissingTitle)
	}
	if s.CTA != nil && (s.CTA.Text == "" || s.CTA.Link == "") {
		return fmt.Errorf("slide %q: %w", s.ID, ErrInvalidCallToAction)
	}
	return nil
}

// ValidateSlides validates every slide and the uniqueness of their IDs.
func ValidateSlides(slides []Slide) error {
	seen := make(map[string]struct{}, len(slides))
	for _, s := range slides {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("slide %q: %w", s.ID, ErrDuplicateSlideID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
