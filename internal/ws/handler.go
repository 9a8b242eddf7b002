package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"message-hub/internal/observability"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests to websocket sessions.
type Handler struct {
	hub     *Hub
	session Session
}

// NewHandler constructs a Handler.
func NewHandler(hub *Hub, session Session) *Handler {
	return &Handler{hub: hub, session: session}
}

// Handle upgrades the connection, registers it with the hub and starts the
// read/write pumps. The connection stays anonymous until a join frame
// arrives.
func (h *Handler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("message-hub/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(h.hub, h.session, conn)
	h.hub.Register(client.ID(), client)

	// Gin recycles c after Handle returns, so everything the disconnect
	// goroutine needs from the request is captured here.
	ip := observability.IPFromRequest(c.Request)
	requestID := observability.RequestIDFromRequest(c.Request)
	connectedAt := time.Now()

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	observability.PublishAudit(ctx, "ws_connect", observability.AuditConn{
		ConnID:    client.ID(),
		IP:        ip,
		RequestID: requestID,
	})

	go client.WritePump()
	go func() {
		client.ReadPump()
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		observability.PublishAudit(ctx, "ws_disconnect", observability.AuditConn{
			ConnID:     client.ID(),
			IP:         ip,
			RequestID:  requestID,
			DurationMS: time.Since(connectedAt).Milliseconds(),
		})
	}()
}
