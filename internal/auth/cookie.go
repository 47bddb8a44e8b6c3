package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie that carries the session token.
const CookieName = "jwt-cookie"

// SetSessionCookie stores token in an HTTP-only, same-site-strict cookie
// expiring together with the token.
func SetSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// ClearSessionCookie replaces the session cookie with an already-expired one.
// The token itself stays valid until its own expiry.
func ClearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-24 * time.Hour),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// SessionToken returns the raw token from the request cookie, if any.
func SessionToken(c *fiber.Ctx) string {
	return c.Cookies(CookieName)
}
