package notify

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"restaurant-panel/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const keepAliveInterval = 25 * time.Second

// GET /api/events?ticket=<ticket>
// Server-sent events, one "event: <topic>" message per change. Streams end
// when shutdown is cancelled.
func StreamHandler(sub Subscriber, shutdown context.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		// the request context is recycled once the handler returns, the
		// stream gets its own
		ctx, cancel := context.WithCancel(shutdown)
		changes, closeSub, err := sub.Subscribe(ctx, session.RestaurantID)
		if err != nil {
			cancel()
			log.Printf("[ERROR] subscribe restaurant %d: %v", session.RestaurantID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Live updates are unavailable")
		}

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer cancel()
			defer closeSub()

			ticker := time.NewTicker(keepAliveInterval)
			defer ticker.Stop()

			fmt.Fprint(w, "event: ready\ndata: {}\n\n")
			if err := w.Flush(); err != nil {
				return
			}

			for {
				select {
				case <-ctx.Done():
					return
				case change, ok := <-changes:
					if !ok {
						return
					}
					data, _ := json.Marshal(change)
					fmt.Fprintf(w, "event: %s\ndata: %s\n\n", change.Topic, data)
				case <-ticker.C:
					fmt.Fprint(w, ": ping\n\n")
				}
				if err := w.Flush(); err != nil {
					// client went away
					return
				}
			}
		}))

		return nil
	}
}
