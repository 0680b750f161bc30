package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"debatebot/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// NewUpgrader accepts connections from the given origins. Requests without
// an Origin header (non-browser clients) are always accepted.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}
}

// streamConn serializes writes to a single connection
type streamConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (s *streamConn) send(eventType string, payload any) error {
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(event)
}

// DebateStreamHandler runs a debate for ?topic= and streams each speech as
// it is generated, followed by a complete or error event. The debate is
// cancelled when the client goes away.
func DebateStreamHandler(debates *services.DebateService, upgrader *websocket.Upgrader, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		topic := strings.TrimSpace(c.Query("topic"))
		if topic == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// The stream is one-way; reading only detects the client closing.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		stream := &streamConn{conn: conn}
		debate, err := debates.Run(ctx, topic, func(ev services.ArgumentEvent) {
			if err := stream.send(EventArgument, argumentPayload(ev)); err != nil {
				logger.Debug("failed to send argument event", "error", err)
				cancel()
			}
		})
		if err != nil {
			logger.Error("streamed debate failed", "topic", topic, "error", err)
			stream.send(EventError, ErrorPayload{Error: err.Error()})
			return
		}

		id := debates.Archive(context.WithoutCancel(ctx), debate)
		if err := stream.send(EventComplete, CompletePayload{DebateID: id, Debate: *debate}); err != nil {
			logger.Debug("failed to send complete event", "error", err)
			return
		}

		stream.writeMu.Lock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "debate complete"),
			time.Now().Add(writeWait))
		stream.writeMu.Unlock()
	}
}
