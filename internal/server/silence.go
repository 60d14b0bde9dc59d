package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mahideveloper1/Video-editor-assignment/internal/session"
	"github.com/mahideveloper1/Video-editor-assignment/internal/silence"
	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
	"github.com/mahideveloper1/Video-editor-assignment/internal/video"
)

type silenceRequest struct {
	SessionID          string  `json:"session_id" binding:"required"`
	NoiseThreshold     string  `json:"noise_threshold"`
	MinSilenceDuration float64 `json:"min_silence_duration"`
}

// processorFor honors per-request overrides of the detection tunables.
func (s *Server) processorFor(req silenceRequest) *video.Processor {
	noise := req.NoiseThreshold
	if noise == "" {
		noise = s.media.NoiseThreshold
	}
	minDur := req.MinSilenceDuration
	if minDur <= 0 {
		minDur = s.media.MinSilenceDuration
	}
	return video.NewProcessor(noise, minDur)
}

// handleDetectSilence reports silent spans without modifying anything.
func (s *Server) handleDetectSilence(c *gin.Context) {
	var req silenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	sess, err := s.sessions.Get(c.Request.Context(), req.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	intervals, duration, err := s.processorFor(req).DetectSilence(
		c.Request.Context(), sess.VideoPath)
	if err != nil {
		s.log.Errorw("silence detection failed", "session", req.SessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to detect silence: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":       req.SessionID,
		"silence_segments": intervals,
		"stats":            silence.Summarize(intervals, duration),
	})
}

// handleRemoveSilence cuts the silent spans out of the session video
// and remaps the session's subtitles onto the compacted clock.
func (s *Server) handleRemoveSilence(c *gin.Context) {
	var req silenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	proc := s.processorFor(req)

	// Detection, removal, and the session rewrite all run under the
	// store's per-session lock: the remapped timestamps are only valid
	// against the subtitle list they were computed from.
	var resp gin.H
	err := s.sessions.Update(c.Request.Context(), req.SessionID, func(sess *session.Session) error {
		if _, err := os.Stat(sess.VideoPath); err != nil {
			return errVideoMissing
		}

		intervals, duration, err := proc.DetectSilence(c.Request.Context(), sess.VideoPath)
		if err != nil {
			return fmt.Errorf("failed to detect silence: %w", err)
		}

		if len(intervals) == 0 {
			resp = gin.H{
				"session_id":      req.SessionID,
				"message":         "No silence detected in video",
				"silence_removed": false,
				"stats":           silence.Summarize(nil, duration),
				"preview_url":     "/uploads/" + filepath.Base(sess.VideoPath),
				"subtitles":       sess.Subtitles,
			}
			return nil
		}

		stats := silence.Summarize(intervals, duration)
		keep, remapped := silence.Compact(intervals, duration, sess.Subtitles)

		name := filepath.Base(sess.VideoPath)
		ext := filepath.Ext(name)
		outName := strings.TrimSuffix(name, ext) + "_no_silence" + ext
		outPath := filepath.Join(s.cfg.UploadDir, outName)

		if err := proc.RemoveSilence(c.Request.Context(), sess.VideoPath, outPath, keep); err != nil {
			return fmt.Errorf("failed to remove silence: %w", err)
		}

		applySilenceRemoval(sess, remapped, stats, outPath)

		resp = gin.H{
			"session_id": req.SessionID,
			"message": fmt.Sprintf("Removed %d silent segments (%.2fs)",
				stats.NumSilentSegments, stats.TotalSilence),
			"silence_removed": true,
			"stats":           stats,
			"preview_url":     "/uploads/" + outName,
			"subtitles":       sess.Subtitles,
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, errVideoMissing):
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		default:
			s.log.Errorw("silence removal failed", "session", req.SessionID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

var errVideoMissing = errors.New("video not found")

// applySilenceRemoval points the session at the compacted media file.
// The stored duration tracks the new clock, not the original one.
func applySilenceRemoval(
	sess *session.Session,
	remapped []timeline.Subtitle,
	stats silence.Stats,
	outPath string,
) {
	sess.Subtitles = remapped
	sess.VideoPath = outPath
	sess.Metadata.Duration = stats.DurationAfterTrims
}
