package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func TestIssuer_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer(testSecret).WithClock(func() time.Time { return now })

	token, expiresAt, err := issuer.Issue("abc123")
	require.NoError(t, err)
	assert.Equal(t, now.Add(15*24*time.Hour), expiresAt)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", userID)
}

func TestIssuer_TokenCarriesUserIDClaim(t *testing.T) {
	issuer := NewIssuer(testSecret)
	token, _, err := issuer.Issue("abc123")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims["userId"])
	assert.Contains(t, claims, "exp")
}

func TestIssuer_Verify(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer(testSecret).WithClock(func() time.Time { return issuedAt })
	valid, expiresAt, err := issuer.Issue("abc123")
	require.NoError(t, err)

	otherSecret, _, err := NewIssuer("another-secret-another-secret-123").Issue("abc123")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": "abc123",
		"exp":    expiresAt.Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "abc123",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": expiresAt.Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		at      time.Time
		wantErr bool
	}{
		{name: "Valid", token: valid, at: issuedAt.Add(time.Hour)},
		{name: "One second before expiry", token: valid, at: expiresAt.Add(-time.Second)},
		{name: "One second after expiry", token: valid, at: expiresAt.Add(time.Second), wantErr: true},
		{name: "Wrong secret", token: otherSecret, at: issuedAt, wantErr: true},
		{name: "Tampered payload", token: tamper(valid), at: issuedAt, wantErr: true},
		{name: "Alg none", token: noneToken, at: issuedAt, wantErr: true},
		{name: "Missing expiry", token: noExp, at: issuedAt, wantErr: true},
		{name: "Missing userId", token: noSubject, at: issuedAt, wantErr: true},
		{name: "Garbage", token: "not-a-jwt", at: issuedAt, wantErr: true},
		{name: "Empty", token: "", at: issuedAt, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := tt.at
			userID, err := issuer.WithClock(func() time.Time { return at }).Verify(tt.token)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidToken))
				assert.Empty(t, userID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "abc123", userID)
		})
	}
}

func tamper(token string) string {
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[len(payload)-2] == 'A' {
		payload[len(payload)-2] = 'B'
	} else {
		payload[len(payload)-2] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}

func TestSessionCookie(t *testing.T) {
	app := fiber.New()
	expiresAt := time.Now().Add(SessionTTL)
	app.Get("/login", func(c *fiber.Ctx) error {
		SetSessionCookie(c, "token-value", expiresAt, false)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/logout", func(c *fiber.Ctx) error {
		ClearSessionCookie(c, false)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/echo", func(c *fiber.Ctx) error {
		return c.SendString(SessionToken(c))
	})

	t.Run("Set", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		cookies := resp.Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, CookieName, cookie.Name)
		assert.Equal(t, "token-value", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.WithinDuration(t, expiresAt, cookie.Expires, 2*time.Second)
	})

	t.Run("Clear", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/logout", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		header := resp.Header.Get("Set-Cookie")
		assert.Contains(t, header, CookieName+"=;")
		assert.Contains(t, strings.ToLower(header), "httponly")
		assert.Contains(t, strings.ToLower(header), "samesite=strict")
	})

	t.Run("Read", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(body))
	})
}
