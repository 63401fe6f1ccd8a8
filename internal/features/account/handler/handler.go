package handler

import (
	"errors"
	"net/http"
	"net/url"

	"storefront/internal/core/config"
	"storefront/internal/core/datastore"
	"storefront/internal/core/identity"
	"storefront/internal/core/logger"
	"storefront/internal/features/account/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const usersTable = "users"

// AccountHandler serves the signed-in caller's account.
type AccountHandler struct {
	store config.DataStoreConfig
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(store config.DataStoreConfig) *AccountHandler {
	return &AccountHandler{
		store: store,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// GetAccount handles GET /account.
// @Summary Current account
// @Description Returns the data store row of the signed-in caller. The caller's session token is forwarded to the data store.
// @Tags Account
// @Produce json
// @Success 200 {object} domain.Account
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /account [get]
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	claims, ok := identity.SessionFrom(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Sign in required",
			RayID:   rayID,
		})
	}

	client, err := datastore.NewClient(h.store, identity.TokenSourceFor(c))
	if err != nil {
		logger.Get().Error("Failed to create data store client", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID,
		})
	}

	query := url.Values{
		"select":   {"*"},
		"clerk_id": {"eq." + claims.Subject},
		"limit":    {"1"},
	}

	var rows []domain.User
	if err := client.Select(c.UserContext(), usersTable, query, &rows); err != nil {
		logger.Get().Error("Failed to load account",
			zap.String("subject", claims.Subject),
			zap.String("ray_id", rayID),
			zap.Error(err),
		)

		status := http.StatusBadGateway
		var statusErr *datastore.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			status = http.StatusUnauthorized
		}
		return c.Status(status).JSON(ErrorResponse{
			Message: "Failed to load account",
			RayID:   rayID,
		})
	}

	if len(rows) == 0 {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: "Account not found",
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(domain.Account{
		Subject: claims.Subject,
		Email:   claims.Email,
		User:    rows[0],
	})
}
