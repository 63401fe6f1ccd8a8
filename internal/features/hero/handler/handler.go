package handler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/core/logger"
	"storefront/internal/features/hero/domain"
	"storefront/internal/features/hero/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DeckHandler handles HTTP requests for hero decks.
type DeckHandler struct {
	service ports.DeckService
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(service ports.DeckService) *DeckHandler {
	return &DeckHandler{
		service: service,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// DeckListResponse lists the stored deck names.
type DeckListResponse struct {
	Decks []string `json:"decks"`
}

// Register mounts the deck routes on router.
func (h *DeckHandler) Register(router fiber.Router) {
	router.Get("/hero/decks", h.ListDecks)
	router.Put("/hero/decks/:name", h.PutDeck)
	router.Get("/hero/decks/:name", h.GetDeck)
	router.Delete("/hero/decks/:name", h.DeleteDeck)
	router.Get("/hero/decks/:name/render", h.RenderDeck)
}

// PutDeck handles PUT /hero/decks/:name.
// @Summary Create or replace a deck
// @Description Stores the slides and display options of a hero banner deck.
// @Tags Hero
// @Accept json
// @Produce json
// @Param name path string true "Deck name"
// @Param deck body domain.Deck true "Deck"
// @Success 200 {object} domain.Deck
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /hero/decks/{name} [put]
func (h *DeckHandler) PutDeck(c *fiber.Ctx) error {
	var deck domain.Deck
	if err := c.BodyParser(&deck); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	deck.Name = c.Params("name")

	saved, err := h.service.SaveDeck(c.UserContext(), deck)
	if err != nil {
		return h.fail(c, "Failed to save deck", err)
	}

	return c.Status(http.StatusOK).JSON(saved)
}

// GetDeck handles GET /hero/decks/:name.
// @Summary Get a deck
// @Tags Hero
// @Produce json
// @Param name path string true "Deck name"
// @Success 200 {object} domain.Deck
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /hero/decks/{name} [get]
func (h *DeckHandler) GetDeck(c *fiber.Ctx) error {
	deck, err := h.service.GetDeck(c.UserContext(), c.Params("name"))
	if err != nil {
		return h.fail(c, "Failed to get deck", err)
	}
	return c.Status(http.StatusOK).JSON(deck)
}

// DeleteDeck handles DELETE /hero/decks/:name.
// @Summary Delete a deck
// @Tags Hero
// @Produce json
// @Param name path string true "Deck name"
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /hero/decks/{name} [delete]
func (h *DeckHandler) DeleteDeck(c *fiber.Ctx) error {
	if err := h.service.DeleteDeck(c.UserContext(), c.Params("name")); err != nil {
		return h.fail(c, "Failed to delete deck", err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Deck removed successfully",
	})
}

// ListDecks handles GET /hero/decks.
// @Summary List decks
// @Tags Hero
// @Produce json
// @Success 200 {object} DeckListResponse
// @Failure 500 {object} ErrorResponse
// @Router /hero/decks [get]
func (h *DeckHandler) ListDecks(c *fiber.Ctx) error {
	names, err := h.service.ListDecks(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to list decks", err)
	}
	if names == nil {
		names = []string{}
	}
	return c.Status(http.StatusOK).JSON(DeckListResponse{Decks: names})
}

// RenderDeck handles GET /hero/decks/:name/render.
// @Summary Render a deck
// @Description Renders the hero banner HTML fragment positioned at the given slide. Empty decks render nothing.
// @Tags Hero
// @Produce html
// @Param name path string true "Deck name"
// @Param index query int false "Slide index" default(0)
// @Success 200 {string} string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /hero/decks/{name}/render [get]
func (h *DeckHandler) RenderDeck(c *fiber.Ctx) error {
	index := 0
	if raw := c.Query("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "index must be an integer")
		}
		index = n
	}

	html, err := h.service.RenderDeck(c.UserContext(), c.Params("name"), index)
	if err != nil {
		return h.fail(c, "Failed to render deck", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).SendString(string(html))
}

// fail maps domain errors to client errors and logs everything else.
func (h *DeckHandler) fail(c *fiber.Ctx, msg string, err error) error {
	if errors.Is(err, domain.ErrDeckNotFound) {
		return respondError(c, http.StatusNotFound, "Deck not found")
	}
	if isValidationError(err) {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	logger.Get().Error(msg,
		zap.String("deck", c.Params("name")),
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)
	return respondError(c, http.StatusInternalServerError, "Internal server error")
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidDeckName,
		domain.ErrInvalidHeight,
		domain.ErrInvalidInterval,
		domain.ErrInvalidCallToAction,
		domain.ErrMissingImageURL,
		domain.ErrMissingImageAlt,
		domain.ErrMissingTitle,
		domain.ErrMissingSlideID,
		domain.ErrDuplicateSlideID,
		domain.ErrIndexOutOfRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

func respondError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}
