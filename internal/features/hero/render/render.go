// Package render projects a hero banner's state onto HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"storefront/internal/features/hero/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// ImageURLFunc rewrites a slide's image reference into the URL the browser should load.
type ImageURLFunc func(src string) string

// Renderer renders banners with html/template.
type Renderer struct {
	templates *template.Template
	imageURL  ImageURLFunc
}

// New parses the banner templates. A nil imageURL leaves image references untouched.
func New(imageURL ImageURLFunc) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing banner templates: %w", err)
	}

	if imageURL == nil {
		imageURL = func(src string) string { return src }
	}

	return &Renderer{
		templates: tmpl,
		imageURL:  imageURL,
	}, nil
}

type slideData struct {
	ID       string
	Image    string
	ImageAlt string
	Title    string
	Subtitle string
	CTA      *domain.CallToAction
	Eager    bool
}

type indicatorData struct {
	Index  int
	Number int
	Active bool
}

type bannerData struct {
	Deck           string
	HeightClasses  string
	ClassName      string
	Index          int
	AutoPlay       bool
	Slide          slideData
	ShowNavigation bool
	Indicators     []indicatorData
}

// Render returns the banner markup for view. An empty deck renders nothing.
func (r *Renderer) Render(view domain.View) (template.HTML, error) {
	return r.RenderDeck("", view)
}

// RenderDeck renders like Render and tags the banner with its deck name so a live client can
// attach to it.
func (r *Renderer) RenderDeck(deck string, view domain.View) (template.HTML, error) {
	slide, ok := view.Current()
	if !ok {
		return "", nil
	}

	cfg := view.Config
	st := view.State
	multi := st.Len > 1

	data := bannerData{
		Deck:          deck,
		HeightClasses: cfg.Height.Classes(),
		ClassName:     cfg.ClassName,
		Index:         st.Index,
		AutoPlay:      st.AutoPlay,
		Slide: slideData{
			ID:       slide.ID,
			Image:    r.imageURL(slide.ImageURL),
			ImageAlt: slide.ImageAlt,
			Title:    slide.Title,
			Subtitle: slide.Subtitle,
			CTA:      slide.CTA,
			Eager:    eager(cfg.Slides, st.Index),
		},
		ShowNavigation: cfg.ShowNavigation && multi,
	}

	if cfg.ShowIndicators && multi {
		data.Indicators = make([]indicatorData, st.Len)
		for i := range data.Indicators {
			data.Indicators[i] = indicatorData{Index: i, Number: i + 1, Active: i == st.Index}
		}
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "banner", data); err != nil {
		return "", fmt.Errorf("executing banner template: %w", err)
	}

	return template.HTML(buf.String()), nil // #nosec G203 - produced by html/template
}

// eager reports whether the image at index should skip lazy loading: the first slide of the
// deck and any slide flagged as priority.
func eager(slides []domain.Slide, index int) bool {
	return index == 0 || slides[index].Priority
}
