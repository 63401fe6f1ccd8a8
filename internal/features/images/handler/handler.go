package handler

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/core/logger"
	"storefront/internal/features/images/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImageHandler serves remote images from allow-listed hosts.
type ImageHandler struct {
	loader *service.Loader
	maxAge int
}

// NewImageHandler creates a new ImageHandler. maxAge is the Cache-Control max-age in seconds.
func NewImageHandler(loader *service.Loader, maxAge int) *ImageHandler {
	return &ImageHandler{
		loader: loader,
		maxAge: maxAge,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// GetImage handles GET /images.
// @Summary Remote image
// @Description Streams an image from an allow-listed remote host.
// @Tags Images
// @Produce image/png,image/jpeg,image/webp
// @Param url query string true "Absolute image URL"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /images [get]
func (h *ImageHandler) GetImage(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	raw := c.Query("url")
	if raw == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "url query parameter is required",
			RayID:   rayID,
		})
	}

	img, err := h.loader.Fetch(c.UserContext(), raw)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Internal server error"

		switch {
		case errors.Is(err, service.ErrMalformedURL):
			status, msg = http.StatusBadRequest, "Malformed image url"
		case errors.Is(err, service.ErrHostNotAllowed):
			status, msg = http.StatusForbidden, "Image host not allowed"
		case errors.Is(err, service.ErrUpstream):
			status, msg = http.StatusBadGateway, "Remote image unavailable"
		default:
			logger.Get().Error("Failed to fetch image", zap.String("ray_id", rayID), zap.Error(err))
		}

		return c.Status(status).JSON(ErrorResponse{
			Message: msg,
			RayID:   rayID,
		})
	}

	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", h.maxAge))
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")

	size := -1
	if img.ContentLength >= 0 {
		size = int(img.ContentLength)
	}
	return c.Status(http.StatusOK).SendStream(img.Body, size)
}
