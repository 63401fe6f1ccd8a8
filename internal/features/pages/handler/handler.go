package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"storefront/internal/core/logger"
	"storefront/internal/features/hero/domain"
	"storefront/internal/features/hero/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	siteTitle       = "SaaS template"
	siteDescription = "Storefront starter with identity provider sign-in and a hosted data store"
)

// homePage is the data of the home template.
type homePage struct {
	Title       string
	Description string
	Hero        template.HTML
	LivePath    string
}

// PageHandler renders the storefront pages.
type PageHandler struct {
	decks       ports.DeckService
	defaultDeck string
	tmpl        *template.Template
}

// NewPageHandler creates a new PageHandler. The home page shows the hero banner of defaultDeck.
func NewPageHandler(decks ports.DeckService, defaultDeck string) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		decks:       decks,
		defaultDeck: defaultDeck,
		tmpl:        tmpl,
	}, nil
}

// Home handles GET /.
// @Summary Home page
// @Tags Pages
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *PageHandler) Home(c *fiber.Ctx) error {
	page := homePage{
		Title:       siteTitle,
		Description: siteDescription,
	}

	hero, err := h.decks.RenderDeck(c.UserContext(), h.defaultDeck, 0)
	switch {
	case err == nil:
		page.Hero = hero
		if hero != "" {
			page.LivePath = "/hero/decks/" + h.defaultDeck + "/live"
		}
	case errors.Is(err, domain.ErrDeckNotFound):
		logger.Get().Warn("Home page deck missing", zap.String("deck", h.defaultDeck))
	default:
		// The page still renders without its banner.
		logger.Get().Error("Failed to render home page hero",
			zap.String("deck", h.defaultDeck),
			zap.Error(err),
		)
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "home.html", page); err != nil {
		logger.Get().Error("Failed to render home page", zap.Error(err))
		return c.Status(http.StatusInternalServerError).SendString("Internal server error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).Send(buf.Bytes())
}
