package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"message-hub/internal/models"
)

// FileLog implements Log on a single JSON file holding the full event array.
// Every append rewrites the whole file; the history is loaded in full at
// startup. This trades write throughput for simplicity and crash safety,
// which is the right fit for a log that is never mutated or deleted from.
type FileLog struct {
	path   string
	mu     sync.Mutex
	events []models.Event
}

// OpenFileLog loads the log at path, creating an empty one if the file does
// not exist yet.
func OpenFileLog(path string) (*FileLog, error) {
	l := &FileLog{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open message log: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &l.events); err != nil {
			return nil, fmt.Errorf("parse message log %s: %w", path, err)
		}
	}
	return l, nil
}

// Append adds the event to the log and flushes synchronously. The timestamp
// is stamped under the lock so it is non-decreasing in append order.
func (l *FileLog) Append(e models.Event) (models.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	l.events = append(l.events, e)

	if err := l.flush(); err != nil {
		return e, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return e, nil
}

// Recent returns the last min(n, length) events in append order.
func (l *FileLog) Recent(n int) []models.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.events) {
		n = len(l.events)
	}
	if n <= 0 {
		return []models.Event{}
	}
	out := make([]models.Event, n)
	copy(out, l.events[len(l.events)-n:])
	return out
}

// Len returns the number of events in the log.
func (l *FileLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Close is a no-op; every append already flushes.
func (l *FileLog) Close() error {
	return nil
}

// flush rewrites the whole file. Write-then-rename keeps the previous
// snapshot intact if the process dies mid-write. Caller holds l.mu.
func (l *FileLog) flush() error {
	data, err := json.MarshalIndent(l.events, "", "  ")
	if err != nil {
		return err
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, l.path)
}

// EnsureDir creates the directory holding the log file.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
