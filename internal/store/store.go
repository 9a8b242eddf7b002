package store

import (
	"errors"

	"message-hub/internal/models"
)

// ErrPersistence indicates the durable write behind an append failed. The
// event is still visible in memory; the service keeps running.
var ErrPersistence = errors.New("message log: durable write failed")

// Log is the append-only message history.
type Log interface {
	// Append stamps the event's timestamp, adds it to the end of the log and
	// flushes the log to durable storage before returning. The returned event
	// is the stored one. A flush failure is reported wrapped in
	// ErrPersistence, but the event remains in the in-memory sequence.
	Append(e models.Event) (models.Event, error)
	// Recent returns the last min(n, length) events in append order.
	Recent(n int) []models.Event
	// Close releases any resources held by the log.
	Close() error
}
