// Package session stores per-user editing sessions behind a key-value
// contract with externally managed expiry.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
)

// ErrNotFound reports a missing or expired session.
var ErrNotFound = errors.New("session not found or expired")

// VideoMetadata describes the uploaded media file.
type VideoMetadata struct {
	Filename string  `json:"filename"`
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	FPS      float64 `json:"fps"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// ChatMessage is one entry in a session's conversation history.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "ai"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the full state of one editing session.
type Session struct {
	ID        string              `json:"session_id"`
	VideoPath string              `json:"video_path"`
	Metadata  VideoMetadata       `json:"metadata"`
	Subtitles []timeline.Subtitle `json:"subtitles"`
	Chat      []ChatMessage       `json:"chat_history"`
	CreatedAt time.Time           `json:"created_at"`
}

// New creates a session for an uploaded video.
func New(videoPath string, md VideoMetadata) *Session {
	return &Session{
		ID:        "sess_" + ulid.Make().String(),
		VideoPath: videoPath,
		Metadata:  md,
		CreatedAt: time.Now(),
	}
}

// Store is the session persistence contract. Get refreshes the
// session's expiry; expired sessions report ErrNotFound.
//
// Update is the only safe way to modify a stored session: it runs the
// whole load-modify-save cycle under a per-session lock so that at
// most one mutation is in flight per session. A bare Get followed by
// Put would let concurrent edits overwrite each other.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, sess *Session) error
	Update(ctx context.Context, id string, fn func(*Session) error) error
	Delete(ctx context.Context, id string) error
}
