package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/mahideveloper1/Video-editor-assignment/internal/session"
	"github.com/mahideveloper1/Video-editor-assignment/internal/silence"
)

var allowedVideoExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".mkv":  true,
}

const maxUploadSize = 500 << 20 // 500MB

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// handleUpload saves a video file, probes its metadata, runs silence
// detection, and creates an editing session.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedVideoExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid file format %q. Allowed formats: mp4, mov, avi, webm, mkv", ext),
		})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File too large. Maximum size: %dMB", maxUploadSize>>20),
		})
		return
	}

	safeName := sanitizeFilename(file.Filename)
	finalName := strings.ToLower(ulid.Make().String()[:8]) + "_" + safeName
	videoPath := filepath.Join(s.cfg.UploadDir, finalName)

	if err := c.SaveUploadedFile(file, videoPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save file: " + err.Error(),
		})
		return
	}

	info, err := s.media.Probe(c.Request.Context(), videoPath)
	if err != nil {
		os.Remove(videoPath)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid video file: " + err.Error(),
		})
		return
	}

	md := session.VideoMetadata{
		Filename: safeName,
		Duration: info.Duration,
		Width:    info.Width,
		Height:   info.Height,
		FPS:      info.FPS,
		Format:   info.Format,
		Size:     info.Size,
	}

	sess := session.New(videoPath, md)
	if err := s.sessions.Put(c.Request.Context(), sess); err != nil {
		os.Remove(videoPath)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create session: " + err.Error(),
		})
		return
	}

	response := gin.H{
		"session_id": sess.ID,
		"filename":   safeName,
		"metadata":   md,
		"message":    "Video uploaded successfully",
	}

	// Silence detection is best effort; a failure never blocks upload.
	intervals, duration, err := s.media.DetectSilence(c.Request.Context(), videoPath)
	if err != nil {
		s.log.Warnw("silence detection failed", "session", sess.ID, "error", err)
	} else {
		response["silence_detection"] = gin.H{
			"has_silence": len(intervals) > 0,
			"segments":    intervals,
			"stats":       silence.Summarize(intervals, duration),
		}
	}

	c.JSON(http.StatusCreated, response)
}

func (s *Server) handleVideoInfo(c *gin.Context) {
	id := c.Param("session")
	sess, err := s.sessions.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Session %s not found or expired", id),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":     sess.ID,
		"metadata":       sess.Metadata,
		"video_url":      "/uploads/" + filepath.Base(sess.VideoPath),
		"subtitle_count": len(sess.Subtitles),
		"created_at":     sess.CreatedAt,
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	id := c.Param("session")
	sess, err := s.sessions.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Session %s not found", id),
		})
		return
	}

	if err := s.sessions.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete session",
		})
		return
	}
	os.Remove(sess.VideoPath)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Session %s deleted successfully", id),
	})
}
