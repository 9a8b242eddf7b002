package models

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds as persisted in the message log.
const (
	EventChat   = "chat"
	EventFile   = "file"
	EventSystem = "system"
)

// FileInfo describes an uploaded file attached to a file event.
type FileInfo struct {
	StoredName   string `json:"filename"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
}

// Event is the unit of persistence and broadcast: a chat message, a shared
// file, or a system notice. Once appended to the log it is immutable.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Username  string    `json:"username,omitempty"`
	Message   string    `json:"message,omitempty"`
	FileInfo  *FileInfo `json:"fileInfo,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChatEvent builds a chat event. The timestamp is left zero and stamped
// by the log on append so log order and timestamp order agree.
func NewChatEvent(username, text string) Event {
	return Event{
		ID:       uuid.NewString(),
		Type:     EventChat,
		Username: username,
		Message:  text,
	}
}

// NewFileEvent builds a file-share event.
func NewFileEvent(username string, info FileInfo) Event {
	return Event{
		ID:       uuid.NewString(),
		Type:     EventFile,
		Username: username,
		FileInfo: &info,
	}
}

// NewSystemEvent builds a join/leave notice.
func NewSystemEvent(text string) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    EventSystem,
		Message: text,
	}
}
