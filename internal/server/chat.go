package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahideveloper1/Video-editor-assignment/internal/edit"
	"github.com/mahideveloper1/Video-editor-assignment/internal/nlu"
	"github.com/mahideveloper1/Video-editor-assignment/internal/session"
	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
)

type chatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

const helpText = `I can help you add and style subtitles! Here are some examples:

- "Add subtitle 'Hello World' from 0 to 5 seconds"
- "Add 'Welcome!' from 1:30 to 1:35 with red color"
- "Add subtitle 'Chapter 1' at 10 seconds for 5 seconds, size 48, bold"
- "Change the last subtitle to yellow"

I understand times like "5 seconds", "1:30", or "2 minutes 30 seconds",
colors by name or hex code, font sizes 12-72, positions top/center/bottom,
and bold/italic styling.`

// handleChat runs one user message through the oracle, compiles the
// extracted parameters into a mutation, and applies it to the
// session's timeline.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	sess, err := s.sessions.Get(c.Request.Context(), req.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Session %s not found or expired. Please upload a video first.", req.SessionID),
		})
		return
	}

	result, err := s.oracle.Interpret(
		c.Request.Context(), req.Message, nlu.TimelineContext(sess.Subtitles))
	if err != nil {
		s.log.Errorw("oracle failed", "session", req.SessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process message: " + err.Error(),
		})
		return
	}

	params := edit.DecodeParams(result.RawParams)
	mutation, err := s.compiler.Compile(result.Intent, params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The apply and save run under the store's per-session lock so a
	// concurrent edit cannot overwrite this one.
	var (
		reply     string
		subtitles []timeline.Subtitle
		videoPath string
	)
	now := time.Now()
	err = s.sessions.Update(c.Request.Context(), req.SessionID, func(sess *session.Session) error {
		store := timeline.NewStoreFrom(sess.Subtitles)
		applied, err := store.Apply(mutation)
		if err != nil {
			return err
		}
		sess.Subtitles = store.Snapshot()

		reply = confirmation(result.Intent, mutation, applied, s.cfg.DefaultStyle)
		sess.Chat = append(sess.Chat,
			session.ChatMessage{Role: "user", Content: req.Message, Timestamp: now},
			session.ChatMessage{Role: "ai", Content: reply, Timestamp: now},
		)

		subtitles = sess.Subtitles
		videoPath = sess.VideoPath
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("Session %s not found or expired", req.SessionID),
			})
		case errors.Is(err, timeline.ErrIndexOutOfRange), errors.Is(err, timeline.ErrInvalidTiming):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.log.Errorw("failed to save session", "session", req.SessionID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to save session",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"message": gin.H{
			"role":      "ai",
			"content":   reply,
			"timestamp": now,
		},
		"subtitles":   subtitles,
		"preview_url": "/uploads/" + filepath.Base(videoPath),
	})
}

// confirmation describes the applied mutation in plain language.
// Styling is mentioned only where it differs from the defaults.
func confirmation(
	intent string,
	m timeline.Mutation,
	applied timeline.Applied,
	defaults timeline.Style,
) string {
	if applied.NoOp {
		if intent == "help" {
			return helpText
		}
		return "I'm ready to help you add subtitles!"
	}

	sub := applied.Subtitle
	switch m.Kind {
	case timeline.KindInsert:
		reply := fmt.Sprintf("Added subtitle: %q from %.1fs to %.1fs",
			sub.Text, sub.StartTime, sub.EndTime)
		if parts := styleParts(sub.Style, defaults); len(parts) > 0 {
			reply += " with " + strings.Join(parts, ", ")
		}
		return reply
	case timeline.KindUpdate:
		return fmt.Sprintf("Updated subtitle %d: %q now runs %.1fs to %.1fs",
			applied.Index+1, sub.Text, sub.StartTime, sub.EndTime)
	default:
		return "Done!"
	}
}

func styleParts(style, defaults timeline.Style) []string {
	var parts []string
	if style.FontColor != defaults.FontColor {
		parts = append(parts, "color: "+style.FontColor)
	}
	if style.FontSize != defaults.FontSize {
		parts = append(parts, fmt.Sprintf("size: %dpx", style.FontSize))
	}
	if style.FontFamily != defaults.FontFamily {
		parts = append(parts, "font: "+style.FontFamily)
	}
	if style.Bold {
		parts = append(parts, "bold")
	}
	if style.Italic {
		parts = append(parts, "italic")
	}
	return parts
}

func (s *Server) handleChatHistory(c *gin.Context) {
	id := c.Param("session")
	sess, err := s.sessions.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Session %s not found", id),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": id,
		"messages":   sess.Chat,
		"count":      len(sess.Chat),
	})
}

func (s *Server) handleGetSubtitles(c *gin.Context) {
	id := c.Param("session")
	sess, err := s.sessions.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Session %s not found", id),
		})
		return
	}

	c.JSON(http.StatusOK, sess.Subtitles)
}

func (s *Server) handleClearSubtitles(c *gin.Context) {
	id := c.Param("session")
	err := s.sessions.Update(c.Request.Context(), id, func(sess *session.Session) error {
		sess.Subtitles = nil
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Session %s not found", id),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("All subtitles cleared for session %s", id),
		"session_id": id,
	})
}
