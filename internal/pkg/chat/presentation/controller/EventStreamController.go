package controller

import (
	"fmt"
	"net/http"

	"parley/internal/infrastructure/realtime"

	"github.com/gin-gonic/gin"
)

// EventStreamController bridges one SSE connection to the hub. Each
// broadcast payload goes out as a single `data: <JSON>` frame terminated by
// a blank line. The subscription lives exactly as long as the request.
type EventStreamController struct {
	hub *realtime.Hub
}

func NewEventStreamController(hub *realtime.Hub) *EventStreamController {
	return &EventStreamController{hub: hub}
}

func (h *EventStreamController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.WriteHeader(http.StatusOK)
		flusher.Flush()

		stream := realtime.NewStream(h.hub)
		defer stream.Close()

		done := c.Request.Context().Done()
		for {
			select {
			case <-done:
				// Client went away or server is shutting down; the deferred
				// Close unsubscribes exactly once.
				return
			case payload := <-stream.Events():
				if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
					// Half-closed transport; tear down quietly.
					return
				}
				flusher.Flush()
			}
		}
	}
}
