package models

import "encoding/json"

// Inbound websocket event names.
const (
	InJoin            = "join"
	InChat            = "chat"
	InTyping          = "typing"
	InStopTyping      = "stopTyping"
	InRequestUserList = "requestUserList"
)

// Outbound websocket event names.
const (
	OutMessageHistory = "message-history"
	OutChatMessage    = "chat-message"
	OutNewFile        = "new-file"
	OutSystemMessage  = "system-message"
	OutUserJoined     = "user-joined"
	OutUserLeft       = "user-left"
	OutUsersList      = "users-list"
	OutTyping         = "typing"
	OutStopTyping     = "stop typing"
)

// Frame is the envelope for every websocket message in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinPayload carries the declared display name of a joining client.
type JoinPayload struct {
	Username string `json:"username"`
}

// ChatPayload carries the text of an inbound chat message.
type ChatPayload struct {
	Message string `json:"message"`
}

// EncodeFrame marshals an outbound frame with its payload.
func EncodeFrame(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: raw})
}

// DecodeFrame unmarshals an inbound frame.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	err := json.Unmarshal(data, &f)
	return f, err
}
