package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSlide(id string) Slide {
	return Slide{
		ID:       id,
		ImageURL: "https://images.unsplash.com/photo-" + id,
		ImageAlt: "Alt " + id,
		Title:    "Title " + id,
	}
}

func TestSlide_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Slide)
		expectedErr error
	}{
		{
			name:   "Valid",
			mutate: func(s *Slide) {},
		},
		{
			name:   "Valid With CTA",
			mutate: func(s *Slide) { s.CTA = &CallToAction{Text: "Shop", Link: "/products"} },
		},
		{
			name:        "Missing ID",
			mutate:      func(s *Slide) { s.ID = " " },
			expectedErr: ErrMissingSlideID,
		},
		{
			name:        "Missing Image URL",
			mutate:      func(s *Slide) { s.ImageURL = "" },
			expectedErr: ErrMissingImageURL,
		},
		{
			name:        "Missing Alt",
			mutate:      func(s *Slide) { s.ImageAlt = "" },
			expectedErr: ErrMissingImageAlt,
		},
		{
			name:        "Missing Title",
			mutate:      func(s *Slide) { s.Title = "" },
			expectedErr: ErrMissingTitle,
		},
		{
			name:        "CTA Without Link",
			mutate:      func(s *Slide) { s.CTA = &CallToAction{Text: "Shop"} },
			expectedErr: ErrInvalidCallToAction,
		},
		{
			name:        "CTA Without Text",
			mutate:      func(s *Slide) { s.CTA = &CallToAction{Link: "/products"} },
			expectedErr: ErrInvalidCallToAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSlide("a")
			tt.mutate(&s)

			err := s.Validate()
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlides_Duplicate(t *testing.T) {
	err := ValidateSlides([]Slide{validSlide("a"), validSlide("b"), validSlide("a")})
	assert.ErrorIs(t, err, ErrDuplicateSlideID)

	assert.NoError(t, ValidateSlides(nil))
}

func TestHeight(t *testing.T) {
	assert.True(t, HeightSmall.Valid())
	assert.True(t, HeightExtraLarge.Valid())
	assert.False(t, Height("xxl").Valid())

	assert.Equal(t, "h-64 md:h-80", HeightSmall.Classes())
	assert.Equal(t, "h-96 md:h-[500px]", Height("bogus").Classes())
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig([]Slide{validSlide("a")})
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.AutoPlay)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.True(t, cfg.ShowNavigation)
	assert.True(t, cfg.ShowIndicators)
	assert.Equal(t, HeightLarge, cfg.Height)

	bad := cfg
	bad.Height = "huge"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidHeight)

	bad = cfg
	bad.Interval = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInterval)

	empty := DefaultConfig(nil)
	assert.NoError(t, empty.Validate())
}

func TestPhaseOf(t *testing.T) {
	assert.Equal(t, PhaseEmpty, PhaseOf(0, true))
	assert.Equal(t, PhaseSingle, PhaseOf(1, true))
	assert.Equal(t, PhaseCyclingAuto, PhaseOf(3, true))
	assert.Equal(t, PhaseCyclingManual, PhaseOf(3, false))
}

func TestDeck_Config(t *testing.T) {
	off := false
	d := Deck{
		Name:           "summer",
		Slides:         []Slide{validSlide("a")},
		AutoPlay:       &off,
		IntervalMillis: 2500,
		ShowIndicators: &off,
		Height:         HeightSmall,
		ClassName:      "mb-8",
	}

	cfg := d.Config(time.Second)
	assert.False(t, cfg.AutoPlay)
	assert.Equal(t, 2500*time.Millisecond, cfg.Interval)
	assert.True(t, cfg.ShowNavigation)
	assert.False(t, cfg.ShowIndicators)
	assert.Equal(t, HeightSmall, cfg.Height)
	assert.Equal(t, "mb-8", cfg.ClassName)

	defaults := Deck{Name: "home"}.Config(3 * time.Second)
	assert.True(t, defaults.AutoPlay)
	assert.Equal(t, 3*time.Second, defaults.Interval)
	assert.Equal(t, HeightLarge, defaults.Height)
}

func TestValidDeckName(t *testing.T) {
	assert.True(t, ValidDeckName("home"))
	assert.True(t, ValidDeckName("summer-2025_sale"))
	assert.False(t, ValidDeckName(""))
	assert.False(t, ValidDeckName("Home"))
	assert.False(t, ValidDeckName("../etc"))
}

func TestSampleDeck(t *testing.T) {
	d := SampleDeck("home")
	assert.Equal(t, "home", d.Name)
	require.Len(t, d.Slides, 2)
	assert.NoError(t, d.Config(0).Validate())
	assert.True(t, d.Slides[0].Priority)
}
