package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-panel/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	changes chan Change
	closed  bool
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, restaurantID uint) (<-chan Change, func() error, error) {
	return f.changes, func() error { f.closed = true; return nil }, nil
}

func newStreamApp(sub Subscriber, shutdown context.Context) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxSessionKey, &auth.Session{RestaurantID: 7})
		return c.Next()
	})
	app.Get("/api/events", StreamHandler(sub, shutdown))
	return app
}

func TestStreamHandler(t *testing.T) {
	t.Run("writes changes until the subscription closes", func(t *testing.T) {
		sub := &fakeSubscriber{changes: make(chan Change, 1)}
		sub.changes <- Change{Topic: TopicProducts, ID: 3, At: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
		close(sub.changes)

		resp, err := newStreamApp(sub, context.Background()).Test(httptest.NewRequest(http.MethodGet, "/api/events", nil), -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
		assert.Contains(t, string(body), "event: ready\n")
		assert.Contains(t, string(body), "event: products\n")
		assert.True(t, sub.closed)
	})

	t.Run("ends on shutdown", func(t *testing.T) {
		shutdown, cancel := context.WithCancel(context.Background())
		cancel()
		sub := &fakeSubscriber{changes: make(chan Change)}

		resp, err := newStreamApp(sub, shutdown).Test(httptest.NewRequest(http.MethodGet, "/api/events", nil), -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Contains(t, string(body), "event: ready\n")
		assert.True(t, sub.closed)
	})
}
