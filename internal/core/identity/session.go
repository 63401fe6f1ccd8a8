// Package identity reads and verifies the identity provider's session tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/config"
	"storefront/internal/core/datastore"
	"storefront/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	sessionLocal = "identity.session"
	tokenLocal   = "identity.token"
)

var (
	// ErrNoSession is returned when the request carries no session token.
	ErrNoSession = errors.New("no session token")
	// ErrInvalidSession is returned when the session token fails verification.
	ErrInvalidSession = errors.New("invalid session token")
	// ErrNotConfigured is returned when no signing key is configured.
	ErrNotConfigured = errors.New("identity signing key not configured")
)

// SessionClaims are the claims of a verified session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Verifier checks session tokens signed by the identity provider.
type Verifier struct {
	key    []byte
	issuer string
	cookie string
}

// NewVerifier creates a Verifier from the identity configuration.
func NewVerifier(cfg config.IdentityConfig) *Verifier {
	cookie := cfg.SessionCookie
	if cookie == "" {
		cookie = "__session"
	}
	return &Verifier{
		key:    []byte(cfg.SigningKey),
		issuer: cfg.Issuer,
		cookie: cookie,
	}
}

// Enabled reports whether tokens can be verified at all.
func (v *Verifier) Enabled() bool {
	return len(v.key) > 0
}

// Verify parses raw and checks its signature, expiry and issuer.
func (v *Verifier) Verify(raw string) (*SessionClaims, error) {
	if !v.Enabled() {
		return nil, ErrNotConfigured
	}
	if raw == "" {
		return nil, ErrNoSession
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims SessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidSession)
	}

	return &claims, nil
}

// TokenFrom extracts the raw session token from the session cookie or a bearer header.
func (v *Verifier) TokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies(v.cookie); token != "" {
		return strings.Clone(token)
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.Clone(strings.TrimSpace(auth[7:]))
	}
	return ""
}

// Middleware attaches the verified session to the request when there is one. Requests without a
// valid session pass through unchanged.
func (v *Verifier) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := v.TokenFrom(c)
		if raw == "" || !v.Enabled() {
			return c.Next()
		}

		claims, err := v.Verify(raw)
		if err != nil {
			logger.Get().Debug("Ignoring session token",
				logger.Masked("token", raw),
				zap.Error(err),
			)
			return c.Next()
		}

		c.Locals(sessionLocal, claims)
		c.Locals(tokenLocal, raw)
		return c.Next()
	}
}

// SessionFrom returns the session attached by Middleware.
func SessionFrom(c *fiber.Ctx) (*SessionClaims, bool) {
	claims, ok := c.Locals(sessionLocal).(*SessionClaims)
	return claims, ok && claims != nil
}

// TokenSourceFor adapts the request's verified session into a data store token source. The token
// is captured when called, so the source stays valid after the handler returns.
func TokenSourceFor(c *fiber.Ctx) datastore.TokenSource {
	token, _ := c.Locals(tokenLocal).(string)
	return func(context.Context) (string, error) {
		return token, nil
	}
}
