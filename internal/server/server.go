// Package server exposes the advisor over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
)

// ChatService is the advisor as seen by the HTTP layer.
type ChatService interface {
	Handle(ctx context.Context, req model.ChatRequest) (*model.Reply, error)
	Close(conversationID string) bool
	Transcript(ctx context.Context, conversationID string) ([]model.Turn, error)
	Sessions() int
}

// Config holds the HTTP listener settings.
type Config struct {
	Addr            string        `envconfig:"HTTP_ADDR" default:":3001"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// NewRouter builds the gin engine with middleware and routes registered.
func NewRouter(svc ChatService) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(Recover))
	r.Use(RequestID())
	r.Use(AccessLog())
	r.Use(cors.New(cors.Config{
		// reflect the caller's origin
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := &chatHandler{svc: svc}
	api := r.Group("/api")
	{
		api.POST("/chat", h.Chat)
		api.DELETE("/chat/:conversationId", h.Close)
		api.GET("/chat/:conversationId/transcript", h.Transcript)
	}
	r.GET("/healthz", h.Health)
	return r
}

// NewHTTPServer wraps the router in an http.Server using cfg.
func NewHTTPServer(cfg Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
