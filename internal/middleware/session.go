package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"threadly/internal/auth"
	"threadly/internal/models"
	"threadly/internal/observability"

	"github.com/gofiber/fiber/v2"
)

const viewerLocalsKey = "viewer"

// Messages written by the gate.
const (
	MsgLoginRequired = "Unauthorized - please log in"
	MsgInvalidToken  = "Invalid token"
)

var publicExactPaths = map[string]struct{}{
	"/api/users/login":  {},
	"/api/users/logout": {},
	"/api/users/signup": {},
}

const publicPostsPrefix = "/api/posts/"

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// SessionGate authenticates requests from the session cookie.
type SessionGate struct {
	tokens *auth.Issuer
	users  UserLookup
}

// NewSessionGate returns a gate verifying tokens with tokens and resolving
// subjects through users.
func NewSessionGate(tokens *auth.Issuer, users UserLookup) *SessionGate {
	return &SessionGate{tokens: tokens, users: users}
}

// IsPublicRoute reports whether a request may skip authentication. Paths are
// compared case-insensitively.
func IsPublicRoute(method, path string) bool {
	p := strings.ToLower(path)
	if _, ok := publicExactPaths[p]; ok {
		return true
	}
	readOnly := method == fiber.MethodGet || method == fiber.MethodHead
	return readOnly && strings.HasPrefix(p, publicPostsPrefix)
}

// Authenticate resolves the caller from the session cookie. Failures are
// *models.AppError values: 401 for a missing or invalid token, 404 when the
// subject no longer exists.
func (g *SessionGate) Authenticate(c *fiber.Ctx) (*models.User, error) {
	ctx := c.UserContext()

	token := auth.SessionToken(c)
	if token == "" {
		g.reject(ctx, "missing_cookie")
		return nil, models.NewUnauthorizedError(MsgLoginRequired)
	}

	userID, err := g.tokens.Verify(token)
	if err != nil {
		g.reject(ctx, "invalid_token", slog.String("error", err.Error()))
		return nil, models.NewUnauthorizedError(MsgInvalidToken)
	}

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			g.reject(ctx, "unknown_user", slog.String("user_id", userID))
			return nil, models.NewNotFoundError("User")
		}
		return nil, err
	}

	c.SetUserContext(WithUserID(ctx, user.ID))
	return user, nil
}

func (g *SessionGate) reject(ctx context.Context, reason string, attrs ...any) {
	observability.SessionRejections.WithLabelValues(reason).Inc()
	Logger.DebugContext(ctx, "session rejected", append([]any{slog.String("reason", reason)}, attrs...)...)
}

// Handler gates every request that is not on the public allow-list. On
// success the viewer is stored for ViewerFrom; on failure the error response
// is written and the chain stops.
func (g *SessionGate) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsPublicRoute(c.Method(), c.Path()) {
			return c.Next()
		}

		user, err := g.Authenticate(c)
		if err != nil {
			return models.RespondWithError(c, Logger, err)
		}

		c.Locals(viewerLocalsKey, user)
		return c.Next()
	}
}

// ViewerFrom returns the user attached by Handler, if any.
func ViewerFrom(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(viewerLocalsKey).(*models.User)
	return user, ok && user != nil
}
