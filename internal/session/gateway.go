// Package session implements the per-connection protocol: join, chat,
// typing indication, user-list queries and disconnect, plus the file-share
// and history operations fed in over HTTP.
package session

import (
	"log"
	"strings"

	"message-hub/internal/models"
	"message-hub/internal/observability"
	"message-hub/internal/presence"
	"message-hub/internal/store"
)

// DefaultReplay is the number of historical events replayed to a newly
// joined client and the default page size of the history endpoint.
const DefaultReplay = 50

// Broadcaster delivers an event frame to a scoped set of connections.
// The websocket hub implements it; tests substitute a recorder.
type Broadcaster interface {
	ToAll(event string, data any)
	ToOthers(origin, event string, data any)
	ToOne(connID, event string, data any)
}

// Gateway coordinates the message log, the presence registry and the
// broadcast engine. All transport adapters (websocket, HTTP ingress) route
// client actions through it.
type Gateway struct {
	log      store.Log
	presence *presence.Registry
	cast     Broadcaster
	replay   int
}

// New builds a Gateway. A replay limit <= 0 falls back to DefaultReplay.
func New(l store.Log, reg *presence.Registry, cast Broadcaster, replay int) *Gateway {
	if replay <= 0 {
		replay = DefaultReplay
	}
	return &Gateway{log: l, presence: reg, cast: cast, replay: replay}
}

// Join registers the display name for a connection, announces it to everyone
// else, pushes the refreshed users list to all and replays recent history to
// the joiner only.
func (g *Gateway) Join(connID, username string) {
	g.presence.Join(connID, username)

	ev := g.append(models.NewSystemEvent(username + " joined the chat"))
	g.cast.ToOthers(connID, models.OutSystemMessage, ev)
	g.cast.ToOthers(connID, models.OutUserJoined, username)
	g.cast.ToAll(models.OutUsersList, g.presence.Snapshot())
	g.cast.ToOne(connID, models.OutMessageHistory, g.log.Recent(g.replay))
	observability.IncWSEvent("join")
}

// Chat appends and broadcasts a chat message. Messages from connections that
// never joined and messages that are empty after trimming are dropped
// silently.
func (g *Gateway) Chat(connID, text string) {
	username, ok := g.presence.Name(connID)
	if !ok {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	ev := g.append(models.NewChatEvent(username, text))
	g.cast.ToAll(models.OutChatMessage, ev)
	observability.IncWSEvent("chat")
}

// Typing relays a typing indicator to everyone but the origin. Indicators
// are never persisted and are dropped before join.
func (g *Gateway) Typing(connID string, active bool) {
	username, ok := g.presence.Name(connID)
	if !ok {
		return
	}
	event := models.OutTyping
	if !active {
		event = models.OutStopTyping
	}
	g.cast.ToOthers(connID, event, username)
}

// UserList pushes the current users list to the requester only. Allowed
// before join as well.
func (g *Gateway) UserList(connID string) {
	g.cast.ToOne(connID, models.OutUsersList, g.presence.Snapshot())
}

// Disconnect releases the presence entry and, if the connection had joined,
// announces the departure. Disconnect before join is a no-op.
func (g *Gateway) Disconnect(connID string) {
	username, ok := g.presence.Leave(connID)
	if !ok {
		return
	}

	ev := g.append(models.NewSystemEvent(username + " left the chat"))
	g.cast.ToOthers(connID, models.OutSystemMessage, ev)
	g.cast.ToOthers(connID, models.OutUserLeft, username)
	g.cast.ToAll(models.OutUsersList, g.presence.Snapshot())
	observability.IncWSEvent("leave")
}

// SubmitFile appends a file-share event and broadcasts it to everyone,
// returning the stored event for the HTTP response.
func (g *Gateway) SubmitFile(username string, info models.FileInfo) (models.Event, error) {
	ev := g.append(models.NewFileEvent(username, info))
	g.cast.ToAll(models.OutNewFile, ev)
	observability.IncWSEvent("file")
	return ev, nil
}

// History returns the last limit events; limit <= 0 means DefaultReplay.
func (g *Gateway) History(limit int) []models.Event {
	if limit <= 0 {
		limit = DefaultReplay
	}
	return g.log.Recent(limit)
}

// append writes through to the log. A failed durable flush is warned about
// and counted, never fatal: the in-memory log stays authoritative.
func (g *Gateway) append(e models.Event) models.Event {
	stored, err := g.log.Append(e)
	if err != nil {
		observability.IncStoreAppendFailure()
		log.Printf("warning: %v", err)
	}
	return stored
}
