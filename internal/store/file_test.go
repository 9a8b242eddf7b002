package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"message-hub/internal/models"
)

func newTestLog(t *testing.T) (*FileLog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.json")
	l, err := OpenFileLog(path)
	require.NoError(t, err)
	return l, path
}

func TestAppendAndRecentOrder(t *testing.T) {
	l, _ := newTestLog(t)

	for i := 0; i < 5; i++ {
		_, err := l.Append(models.NewChatEvent("alice", fmt.Sprintf("msg %d", i)))
		require.NoError(t, err)
	}

	got := l.Recent(3)
	require.Len(t, got, 3)
	assert.Equal(t, "msg 2", got[0].Message)
	assert.Equal(t, "msg 3", got[1].Message)
	assert.Equal(t, "msg 4", got[2].Message)
}

func TestRecentBoundedByLength(t *testing.T) {
	l, _ := newTestLog(t)

	_, err := l.Append(models.NewChatEvent("alice", "only one"))
	require.NoError(t, err)

	assert.Len(t, l.Recent(50), 1)
	assert.Empty(t, l.Recent(0))
	assert.Empty(t, l.Recent(-1))
}

func TestRecentReturnsLastFiftyOfSixty(t *testing.T) {
	l, _ := newTestLog(t)

	for i := 0; i < 60; i++ {
		_, err := l.Append(models.NewChatEvent("alice", fmt.Sprintf("msg %d", i)))
		require.NoError(t, err)
	}

	got := l.Recent(50)
	require.Len(t, got, 50)
	assert.Equal(t, "msg 10", got[0].Message)
	assert.Equal(t, "msg 59", got[49].Message)
}

func TestTimestampsNonDecreasing(t *testing.T) {
	l, _ := newTestLog(t)

	for i := 0; i < 10; i++ {
		_, err := l.Append(models.NewChatEvent("alice", "tick"))
		require.NoError(t, err)
	}

	events := l.Recent(10)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.Before(events[i-1].Timestamp))
	}
}

func TestReopenRestoresLog(t *testing.T) {
	l, path := newTestLog(t)

	first, err := l.Append(models.NewChatEvent("alice", "persisted"))
	require.NoError(t, err)
	_, err = l.Append(models.NewSystemEvent("bob joined the chat"))
	require.NoError(t, err)
	require.NoError(t, l.Close())

	reopened, err := OpenFileLog(path)
	require.NoError(t, err)

	got := reopened.Recent(10)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, "persisted", got[0].Message)
	assert.Equal(t, models.EventSystem, got[1].Type)
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	l, err := OpenFileLog(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Empty(t, l.Recent(50))
}

func TestOpenCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFileLog(path)
	require.Error(t, err)
}

func TestAppendFlushFailureKeepsEventInMemory(t *testing.T) {
	// A log path inside a directory that does not exist makes every flush
	// fail while the in-memory sequence keeps working.
	l := &FileLog{path: filepath.Join(t.TempDir(), "missing", "messages.json")}

	stored, err := l.Append(models.NewChatEvent("alice", "doomed"))
	require.ErrorIs(t, err, ErrPersistence)

	got := l.Recent(10)
	require.Len(t, got, 1)
	assert.Equal(t, stored.ID, got[0].ID)

	// The log stays usable after the failure.
	_, err = l.Append(models.NewChatEvent("alice", "still here"))
	require.ErrorIs(t, err, ErrPersistence)
	assert.Len(t, l.Recent(10), 2)
}

func TestFileEventRoundTrip(t *testing.T) {
	l, path := newTestLog(t)

	info := models.FileInfo{
		StoredName:   "abc123.png",
		OriginalName: "cat.png",
		Path:         "/uploads/abc123.png",
		Size:         2048,
		MimeType:     "image/png",
	}
	_, err := l.Append(models.NewFileEvent("alice", info))
	require.NoError(t, err)
	require.NoError(t, l.Close())

	reopened, err := OpenFileLog(path)
	require.NoError(t, err)

	got := reopened.Recent(1)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].FileInfo)
	assert.Equal(t, info, *got[0].FileInfo)
}
