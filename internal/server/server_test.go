package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"threadly/internal/auth"
	"threadly/internal/cache"
	"threadly/internal/config"
	"threadly/internal/database"
	"threadly/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "server-test-secret-that-is-long-enough"

type testEnv struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
	redis  *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = rdb.Close()
		_ = sqlDB.Close()
	})

	s, err := NewServerWithDeps(&config.Config{JWTSecret: testJWTSecret, Env: "test"}, db, rdb)
	require.NoError(t, err)
	s.userService.WithHashCost(bcrypt.MinCost)

	return &testEnv{server: s, app: s.App(), db: db, redis: mr}
}

// do sends a request with an optional JSON body and session cookie.
func (e *testEnv) do(t *testing.T, method, path string, body any, session string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: session})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", auth.CookieName)
	return nil
}

// signup registers username and returns its id and session token.
func (e *testEnv) signup(t *testing.T, username string) (string, string) {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/users/signup", map[string]string{
		"name":     username,
		"username": username,
		"email":    username + "@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	account := decode[models.AccountView](t, resp)
	return account.ID, sessionCookie(t, resp).Value
}

func (e *testEnv) createPost(t *testing.T, session, text string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/posts/create", map[string]string{"text": text}, session)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[CreatePostResponse](t, resp).Post.ID
}

func (e *testEnv) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/health/live", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "healthy", body["status"])

	env.redis.SetError("server down")
	resp = env.do(t, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decode[models.ErrorResponse](t, resp)
	assert.NotEmpty(t, body.Message)
}
