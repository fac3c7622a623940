package controller

import (
	"net/http"
	"time"

	"parley/internal/infrastructure/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when needed.
		return true
	},
}

const socketReadTimeout = 60 * time.Second

// EventSocketController is the websocket variant of the event stream: the
// same broadcast payloads delivered as text frames. Inbound frames are not
// interpreted; the read loop only detects disconnects.
type EventSocketController struct {
	hub *realtime.Hub
}

func NewEventSocketController(hub *realtime.Hub) *EventSocketController {
	return &EventSocketController{hub: hub}
}

func (h *EventSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConn(ws)
		conn.Start()
		defer conn.Close(websocket.CloseNormalClosure, "session closed")

		stream := realtime.NewStream(h.hub)
		defer stream.Close()

		go func() {
			defer stream.Close()
			for {
				select {
				case <-conn.Done():
					return
				case payload := <-stream.Events():
					if err := conn.Send(payload); err != nil {
						return
					}
				}
			}
		}()

		ws.SetReadLimit(1 << 10)
		_ = ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		})

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}
}
