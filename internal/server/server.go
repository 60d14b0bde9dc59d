// Package server exposes the editing workflow over HTTP: upload a
// video, edit subtitles through chat, compact silence, export.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahideveloper1/Video-editor-assignment/internal/config"
	"github.com/mahideveloper1/Video-editor-assignment/internal/edit"
	"github.com/mahideveloper1/Video-editor-assignment/internal/logging"
	"github.com/mahideveloper1/Video-editor-assignment/internal/nlu"
	"github.com/mahideveloper1/Video-editor-assignment/internal/session"
	"github.com/mahideveloper1/Video-editor-assignment/internal/video"
)

// Server wires the editing services behind gin handlers.
type Server struct {
	cfg      *config.Config
	log      *logging.Logger
	sessions session.Store
	oracle   nlu.Oracle
	media    *video.Processor
	compiler *edit.Compiler
}

func New(
	cfg *config.Config,
	log *logging.Logger,
	sessions session.Store,
	oracle nlu.Oracle,
	media *video.Processor,
) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		oracle:   oracle,
		media:    media,
		compiler: edit.NewCompiler(cfg.DefaultStyle),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", s.handleHealth)

	// uploaded and exported media for preview/download
	r.Static("/uploads", s.cfg.UploadDir)
	r.Static("/outputs", s.cfg.OutputDir)

	api := r.Group("/api")
	{
		api.POST("/upload", s.handleUpload)
		api.GET("/video/:session", s.handleVideoInfo)
		api.DELETE("/video/:session", s.handleDeleteSession)

		api.POST("/chat", s.handleChat)
		api.GET("/chat/history/:session", s.handleChatHistory)

		api.GET("/subtitles/:session", s.handleGetSubtitles)
		api.DELETE("/subtitles/:session", s.handleClearSubtitles)

		api.POST("/detect-silence", s.handleDetectSilence)
		api.POST("/remove-silence", s.handleRemoveSilence)

		api.POST("/export", s.handleExport)
		api.GET("/download/:filename", s.handleDownload)
	}

	return r
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.log.Infow("starting server", "addr", addr, "provider", s.cfg.Provider)
	return s.Router().Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "video-editor",
		"provider": s.cfg.Provider,
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
