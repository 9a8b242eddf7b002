package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"message-hub/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Session is what a client needs from the protocol layer.
type Session interface {
	Join(connID, username string)
	Chat(connID, text string)
	Typing(connID string, active bool)
	UserList(connID string)
	Disconnect(connID string)
}

// Client pumps frames between one websocket connection and the hub.
type Client struct {
	id      string
	hub     *Hub
	session Session
	conn    *websocket.Conn
	send    chan []byte
}

// NewClient wraps an upgraded connection. The caller starts the pumps.
func NewClient(h *Hub, s Session, conn *websocket.Conn) *Client {
	return &Client{
		id:      uuid.NewString(),
		hub:     h,
		session: s,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
	}
}

// ID returns the connection identity assigned at upgrade time.
func (c *Client) ID() string {
	return c.id
}

// Send queues a frame for delivery. A full buffer drops the frame so one
// slow reader never stalls a broadcast or a disconnect.
func (c *Client) Send(payload []byte) {
	select {
	case c.send <- payload:
	default:
		log.Printf("ws: client %s send buffer full, dropping frame", c.id)
	}
}

// ReadPump reads inbound frames until the connection dies, then runs the
// disconnect transition and unregisters from the hub. Closing the send
// channel after Unregister returns is safe: the hub only delivers while
// holding its lock, so no Send can land once the entry is gone. The close
// stops WritePump without waiting for the next ping.
func (c *Client) ReadPump() {
	defer func() {
		c.session.Disconnect(c.id)
		c.hub.Unregister(c.id)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("ws: client %s read error: %v", c.id, err)
			}
			return
		}
		c.dispatch(data)
	}
}

// WritePump drains the send channel to the connection and keeps it alive
// with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) dispatch(data []byte) {
	frame, err := models.DecodeFrame(data)
	if err != nil {
		log.Printf("ws: client %s sent invalid frame: %v", c.id, err)
		return
	}

	switch frame.Event {
	case models.InJoin:
		var p models.JoinPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			log.Printf("ws: client %s sent invalid join payload: %v", c.id, err)
			return
		}
		c.session.Join(c.id, p.Username)

	case models.InChat:
		var p models.ChatPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			log.Printf("ws: client %s sent invalid chat payload: %v", c.id, err)
			return
		}
		c.session.Chat(c.id, p.Message)

	case models.InTyping:
		c.session.Typing(c.id, true)

	case models.InStopTyping:
		c.session.Typing(c.id, false)

	case models.InRequestUserList:
		c.session.UserList(c.id)

	default:
		log.Printf("ws: client %s sent unknown event %q", c.id, frame.Event)
	}
}
