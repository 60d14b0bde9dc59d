package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/mahideveloper1/Video-editor-assignment/internal/subtitle"
)

type exportRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Filename  string `json:"filename"`
}

// handleExport writes the session's subtitles to an ASS file and burns
// them into the video.
func (s *Server) handleExport(c *gin.Context) {
	var req exportRequest
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
			"error": fmt.Sprintf("Session %s not found or expired", req.SessionID),
		})
		return
	}
	if len(sess.Subtitles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No subtitles to export. Please add subtitles first using the chat endpoint.",
		})
		return
	}
	if _, err := os.Stat(sess.VideoPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video file not found"})
		return
	}

	outName := req.Filename
	if outName == "" {
		base := filepath.Base(sess.VideoPath)
		outName = strings.TrimSuffix(base, filepath.Ext(base)) + "_subtitled.mp4"
	}
	outName = sanitizeFilename(outName)
	if !strings.HasSuffix(outName, ".mp4") {
		outName += ".mp4"
	}

	uniqueID := strings.ToLower(ulid.Make().String()[:8])
	finalName := uniqueID + "_" + outName
	outPath := filepath.Join(s.cfg.OutputDir, finalName)

	// style rendering scales to the source resolution
	writer := &subtitle.ASSWriter{
		PlayResX: sess.Metadata.Width,
		PlayResY: sess.Metadata.Height,
	}
	if writer.PlayResX == 0 || writer.PlayResY == 0 {
		writer.PlayResX, writer.PlayResY = 1920, 1080
	}

	assPath := filepath.Join(s.cfg.OutputDir, uniqueID+"_subtitles.ass")
	if err := writer.Write(sess.Subtitles, assPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate subtitle file: " + err.Error(),
		})
		return
	}
	defer os.Remove(assPath)

	if err := s.media.BurnSubtitles(c.Request.Context(), sess.VideoPath, assPath, outPath); err != nil {
		s.log.Errorw("subtitle burn-in failed", "session", req.SessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to burn subtitles: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":   req.SessionID,
		"download_url": "/outputs/" + finalName,
		"filename":     outName,
		"message":      "Video exported successfully with subtitles",
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	name := sanitizeFilename(c.Param("filename"))
	path := filepath.Join(s.cfg.OutputDir, name)

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.FileAttachment(path, name)
}
