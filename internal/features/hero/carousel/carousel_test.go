package carousel

import (
	"sync"
	"testing"
	"time"

	"storefront/internal/core/clock"
	"storefront/internal/features/hero/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const interval = 5000 * time.Millisecond

func slides(ids ...string) []domain.Slide {
	out := make([]domain.Slide, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Slide{
			ID:       id,
			ImageURL: "https://images.unsplash.com/" + id,
			ImageAlt: "alt " + id,
			Title:    "title " + id,
		})
	}
	return out
}

func newCarousel(t *testing.T, cfg domain.Config) (*Carousel, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c, err := New(cfg, clk)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, clk
}

func waitIndex(t *testing.T, c *Carousel, want int) {
	t.Helper()
	require.Eventually(t, func() bool { return c.State().Index == want }, time.Second, time.Millisecond)
}

// recorder collects every view an observer is notified with.
type recorder struct {
	mu    sync.Mutex
	views []domain.View
}

func (r *recorder) Notify(v domain.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recorder) indexes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, 0, len(r.views))
	for _, v := range r.views {
		out = append(out, v.State.Index)
	}
	return out
}

func TestNew_InvalidConfig(t *testing.T) {
	clk := clock.NewFake(time.Now())

	cfg := domain.DefaultConfig(slides("a", "b"))
	cfg.Interval = 0
	_, err := New(cfg, clk)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	cfg = domain.DefaultConfig(slides("a", "b"))
	cfg.Height = "giant"
	_, err = New(cfg, clk)
	assert.ErrorIs(t, err, domain.ErrInvalidHeight)

	assert.Equal(t, 0, clk.Created())
}

func TestCarousel_EmptyDeck(t *testing.T) {
	c, clk := newCarousel(t, domain.DefaultConfig(nil))

	st := c.State()
	assert.True(t, st.Empty())
	assert.Equal(t, domain.PhaseEmpty, st.Phase)

	_, ok := c.View().Current()
	assert.False(t, ok)

	assert.ErrorIs(t, c.Next(), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Previous(), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, c.SetIndex(0), domain.ErrIndexOutOfRange)

	c.Close()
	assert.Equal(t, 0, clk.Created())
	assert.Equal(t, 0, clk.Active())
}

func TestCarousel_SingleSlide(t *testing.T) {
	c, clk := newCarousel(t, domain.DefaultConfig(slides("a")))

	assert.Equal(t, domain.PhaseSingle, c.State().Phase)
	assert.Equal(t, 0, clk.Created())

	clk.Advance(3 * interval)
	assert.Equal(t, 0, c.State().Index)

	require.NoError(t, c.Next())
	assert.Equal(t, 0, c.State().Index)
	require.NoError(t, c.Previous())
	assert.Equal(t, 0, c.State().Index)
	assert.Equal(t, 0, clk.Created())
}

func TestCarousel_AutoAdvanceOncePerInterval(t *testing.T) {
	c, clk := newCarousel(t, domain.DefaultConfig(slides("a", "b", "c")))
	rec := &recorder{}
	c.Subscribe(rec)

	assert.Equal(t, domain.PhaseCyclingAuto, c.State().Phase)
	assert.Equal(t, 1, clk.Active())

	clk.Advance(interval - time.Millisecond)
	assert.Equal(t, 0, c.State().Index)

	clk.Advance(time.Millisecond)
	waitIndex(t, c, 1)

	clk.Advance(interval)
	waitIndex(t, c, 2)

	clk.Advance(interval)
	waitIndex(t, c, 0)

	assert.Equal(t, []int{1, 2, 0}, rec.indexes())
	assert.True(t, c.State().AutoPlay)
	assert.Equal(t, 1, clk.Created())
}

func TestCarousel_AutoPlayDisabled(t *testing.T) {
	cfg := domain.DefaultConfig(slides("a", "b"))
	cfg.AutoPlay = false
	c, clk := newCarousel(t, cfg)

	assert.Equal(t, domain.PhaseCyclingManual, c.State().Phase)
	clk.Advance(2 * interval)
	assert.Equal(t, 0, c.State().Index)
	assert.Equal(t, 0, clk.Created())
}

func TestCarousel_ManualNavigationStopsAutoAdvance(t *testing.T) {
	// deck [A, B, C], t=5000 -> B, prev at t=6000 -> A, t=11000 still A.
	c, clk := newCarousel(t, domain.DefaultConfig(slides("a", "b", "c")))

	clk.Advance(interval)
	waitIndex(t, c, 1)

	clk.Advance(1000 * time.Millisecond)
	require.NoError(t, c.Previous())

	st := c.State()
	assert.Equal(t, 0, st.Index)
	assert.False(t, st.AutoPlay)
	assert.Equal(t, domain.PhaseCyclingManual, st.Phase)
	assert.Equal(t, 0, clk.Active())

	clk.Advance(interval)
	assert.Equal(t, 0, c.State().Index)
	assert.Equal(t, 1, clk.Created())
}

func TestCarousel_SetIndexSameIndex(t *testing.T) {
	c, clk := newCarousel(t, domain.DefaultConfig(slides("a", "b")))
	rec := &recorder{}
	c.Subscribe(rec)

	require.NoError(t, c.SetIndex(0))
	assert.Equal(t, 0, c.State().Index)
	assert.False(t, c.State().AutoPlay)
	assert.Equal(t, 0, clk.Active())

	require.NoError(t, c.SetIndex(0))
	assert.Equal(t, domain.State{Index: 0, AutoPlay: false, Len: 2, Phase: domain.PhaseCyclingManual}, c.State())
	assert.Equal(t, []int{0, 0}, rec.indexes())
}

func TestCarousel_SetIndexOutOfRange(t *testing.T) {
	c, clk := newCarousel(t, domain.DefaultConfig(slides("a", "b")))

	assert.ErrorIs(t, c.SetIndex(2), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, c.SetIndex(-1), domain.ErrIndexOutOfRange)

	// A rejected navigation is not a navigation.
	assert.True(t, c.State().AutoPlay)
	assert.Equal(t, 1, clk.Active())
}

func TestCarousel_Wraparound(t *testing.T) {
	cfg := domain.DefaultConfig(slides("a", "b", "c"))
	cfg.AutoPlay = false
	c, _ := newCarousel(t, cfg)

	require.NoError(t, c.Previous())
	assert.Equal(t, 2, c.State().Index)

	require.NoError(t, c.Next())
	assert.Equal(t, 0, c.State().Index)

	require.NoError(t, c.SetIndex(2))
	require.NoError(t, c.Next())
	assert.Equal(t, 0, c.State().Index)
}

func TestCarousel_SetIntervalRearms(t *testing.T) {
	c, clk := newCarousel(t, domain.DefaultConfig(slides("a", "b")))

	require.NoError(t, c.SetInterval(2*time.Second))
	assert.Equal(t, 1, clk.Active())
	assert.Equal(t, 2, clk.Created())

	require.NoError(t, c.SetInterval(2*time.Second))
	assert.Equal(t, 2, clk.Created())

	clk.Advance(2 * time.Second)
	waitIndex(t, c, 1)

	assert.ErrorIs(t, c.SetInterval(0), domain.ErrInvalidInterval)
}

func TestCarousel_SetSlides(t *testing.T) {
	c, clk := newCarousel(t, domain.DefaultConfig(slides("a", "b", "c")))

	clk.Advance(2 * interval)
	waitIndex(t, c, 2)

	require.NoError(t, c.SetSlides(slides("x", "y")))
	st := c.State()
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, 2, st.Len)
	assert.Equal(t, 1, clk.Active())
	assert.Equal(t, 2, clk.Created())

	require.NoError(t, c.SetSlides(slides("solo")))
	assert.Equal(t, domain.PhaseSingle, c.State().Phase)
	assert.Equal(t, 0, clk.Active())

	require.NoError(t, c.SetSlides(slides("a", "b")))
	assert.Equal(t, 1, clk.Active())

	assert.ErrorIs(t, c.SetSlides(slides("dup", "dup")), domain.ErrDuplicateSlideID)
}

func TestCarousel_NoTimerAfterManualNavigation(t *testing.T) {
	c, clk := newCarousel(t, domain.DefaultConfig(slides("a", "b")))
	require.NoError(t, c.Next())

	require.NoError(t, c.SetInterval(time.Second))
	require.NoError(t, c.SetSlides(slides("a", "b", "c", "d")))
	require.NoError(t, c.SetSlides(slides("a", "b")))

	assert.Equal(t, 0, clk.Active())
	assert.Equal(t, 1, clk.Created())

	clk.Advance(10 * interval)
	assert.Equal(t, 1, c.State().Index)
}

func TestCarousel_Unsubscribe(t *testing.T) {
	cfg := domain.DefaultConfig(slides("a", "b"))
	cfg.AutoPlay = false
	c, _ := newCarousel(t, cfg)

	rec := &recorder{}
	unsubscribe := c.Subscribe(rec)
	require.NoError(t, c.Next())
	unsubscribe()
	require.NoError(t, c.Next())

	assert.Equal(t, []int{1}, rec.indexes())
}

func TestCarousel_ObserverReceivesCurrentSlide(t *testing.T) {
	cfg := domain.DefaultConfig(slides("a", "b"))
	cfg.AutoPlay = false
	c, _ := newCarousel(t, cfg)

	var got domain.Slide
	c.Subscribe(ObserverFunc(func(v domain.View) {
		got, _ = v.Current()
	}))

	require.NoError(t, c.SetIndex(1))
	assert.Equal(t, "b", got.ID)
}

func TestCarousel_Close(t *testing.T) {
	c, clk := newCarousel(t, domain.DefaultConfig(slides("a", "b")))
	rec := &recorder{}
	c.Subscribe(rec)

	c.Close()
	c.Close()

	assert.Equal(t, 0, clk.Active())
	assert.ErrorIs(t, c.SetIndex(1), ErrClosed)
	assert.ErrorIs(t, c.Next(), ErrClosed)
	assert.ErrorIs(t, c.Previous(), ErrClosed)
	assert.ErrorIs(t, c.SetInterval(time.Second), ErrClosed)
	assert.ErrorIs(t, c.SetSlides(slides("a")), ErrClosed)

	clk.Advance(2 * interval)
	assert.Equal(t, 0, c.State().Index)
	assert.Empty(t, rec.indexes())
}

func TestNew_CopiesSlides(t *testing.T) {
	deck := slides("a", "b")
	cfg := domain.DefaultConfig(deck)
	cfg.AutoPlay = false
	c, _ := newCarousel(t, cfg)

	deck[0].Title = "mutated"
	assert.Equal(t, "title a", c.View().Config.Slides[0].Title)
}

func TestCarousel_ObserverCannotMutateDeck(t *testing.T) {
	deck := slides("a", "b")
	deck[1].CTA = &domain.CallToAction{Text: "Shop", Link: "/shop"}
	cfg := domain.DefaultConfig(deck)
	cfg.AutoPlay = false
	c, _ := newCarousel(t, cfg)

	c.Subscribe(ObserverFunc(func(v domain.View) {
		v.Config.Slides[0].Title = "mutated"
		v.Config.Slides[1].CTA.Link = "/elsewhere"
	}))
	require.NoError(t, c.Next())

	got := c.View().Config.Slides
	assert.Equal(t, "title a", got[0].Title)
	assert.Equal(t, "/shop", got[1].CTA.Link)
}
