package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smart-interviewer-api/internal/middleware"
)

func newRedisStorage(t *testing.T) (*middleware.RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return middleware.NewRedisStorage(client), server
}

func TestRedisStorageRoundTrip(t *testing.T) {
	storage, server := newRedisStorage(t)

	value, err := storage.Get("missing")
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, storage.Set("client-a", []byte("3"), time.Minute))
	value, err = storage.Get("client-a")
	require.NoError(t, err)
	require.Equal(t, []byte("3"), value)
	require.True(t, server.Exists("interviewer:ratelimit:client-a"))

	server.FastForward(2 * time.Minute)
	value, err = storage.Get("client-a")
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, storage.Set("client-b", []byte("1"), 0))
	require.NoError(t, storage.Delete("client-b"))
	require.False(t, server.Exists("interviewer:ratelimit:client-b"))
}

func TestRedisStorageResetKeepsForeignKeys(t *testing.T) {
	storage, server := newRedisStorage(t)

	require.NoError(t, server.Set("other:key", "keep"))
	require.NoError(t, storage.Set("a", []byte("1"), 0))
	require.NoError(t, storage.Set("b", []byte("1"), 0))

	require.NoError(t, storage.Reset())
	require.False(t, server.Exists("interviewer:ratelimit:a"))
	require.False(t, server.Exists("interviewer:ratelimit:b"))
	require.True(t, server.Exists("other:key"))
	require.NoError(t, storage.Close())
}

func TestRateLimitWithRedisStorage(t *testing.T) {
	storage, _ := newRedisStorage(t)

	app := fiber.New()
	app.Use(middleware.RateLimit(2, time.Minute, storage))
	app.Get("/api/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil), -1)
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}
	require.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, statuses)
}

func TestCorrelationIDPropagation(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.CorrelationIDFromContext(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "req-123", resp.Header.Get("X-Correlation-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Len(t, resp.Header.Get("X-Correlation-ID"), 36)
}
