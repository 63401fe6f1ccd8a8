package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"storefront/internal/core/logger"
	"storefront/internal/features/hero/domain"
	"storefront/internal/features/hero/service"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LiveHandler serves live hero banners over websockets, one banner instance per connection.
type LiveHandler struct {
	hub    *service.Hub
	logger *zap.Logger
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(hub *service.Hub) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		logger: logger.Get().Named("hero_live"),
	}
}

// Register mounts the live route on router.
func (h *LiveHandler) Register(router fiber.Router) {
	router.Get("/hero/decks/:name/live", h.Upgrade, websocket.New(h.Serve))
}

// Upgrade handles GET /hero/decks/:name/live before the websocket handshake.
// @Summary Live hero banner
// @Description Websocket. Clients send {"action":"next|prev|goto","index":n}; the server pushes {"index","auto_play","phase","html"} after every change.
// @Tags Hero
// @Param name path string true "Deck name"
// @Success 101
// @Failure 426 {object} ErrorResponse
// @Router /hero/decks/{name}/live [get]
func (h *LiveHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return respondError(c, http.StatusUpgradeRequired, "Websocket upgrade required")
	}
	return c.Next()
}

// Serve runs one live banner session until the client disconnects.
func (h *LiveHandler) Serve(conn *websocket.Conn) {
	name := conn.Params("name")
	ray, _ := conn.Locals("requestid").(string)
	log := h.logger.With(zap.String("deck", name), zap.String("ray_id", ray))

	var writeMu sync.Mutex
	write := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	session, err := h.hub.Open(context.Background(), name)
	if err != nil {
		msg := "Internal server error"
		if errors.Is(err, domain.ErrDeckNotFound) {
			msg = "Deck not found"
		} else {
			log.Error("Failed to open live session", zap.Error(err))
		}
		_ = write(ErrorResponse{Message: msg, RayID: ray})
		return
	}
	defer session.Close()

	first, err := session.Current()
	if err != nil {
		log.Error("Failed to render first frame", zap.Error(err))
		return
	}
	if err := write(first); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range session.Updates() {
			if err := write(u); err != nil {
				log.Debug("Live client gone", zap.Error(err))
				return
			}
		}
	}()

	for {
		var cmd service.Command
		if err := conn.ReadJSON(&cmd); err != nil {
			break
		}
		if err := session.Handle(cmd); err != nil {
			if werr := write(ErrorResponse{Message: err.Error(), RayID: ray}); werr != nil {
				break
			}
		}
	}

	session.Close()
	<-done
}
