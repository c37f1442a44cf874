// Package httpbridge exposes the message dispatcher over local HTTP.
package httpbridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/page-push/internal/application"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Dispatcher answers one message asynchronously.
type Dispatcher interface {
	HandleAsync(ctx context.Context, msg application.Message) <-chan application.Reply
}

type handler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewRouter serves POST /messages and GET /healthz. Browser callers must come
// from an extension origin or one of allowedOrigins; requests without an
// Origin header (CLI, curl) are accepted.
func NewRouter(dispatcher Dispatcher, logger *slog.Logger, allowedOrigins ...string) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	h := handler{dispatcher: dispatcher, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), restrictOrigins(allowedOrigins, logger))
	r.GET("/healthz", h.health)
	r.POST("/messages", h.postMessage)

	return r
}

// Serve runs the router on addr until ctx is done.
func Serve(ctx context.Context, addr string, router http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("message bridge listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve message bridge: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown message bridge: %w", err)
	}

	return nil
}

func (h handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h handler) postMessage(c *gin.Context) {
	var msg application.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decode message: " + err.Error()})
		return
	}

	reply := <-h.dispatcher.HandleAsync(c.Request.Context(), msg)
	c.JSON(http.StatusOK, reply)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("bridge request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// restrictOrigins answers CORS only for extension pages and allowed origins.
// Any other browser origin is refused before the dispatcher sees it, since
// the bridge acts with the stored credentials.
func restrictOrigins(allowed []string, logger *slog.Logger) gin.HandlerFunc {
	allowSet := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			allowSet[origin] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			c.Next()
			return
		}

		if !originAllowed(origin, allowSet) {
			logger.Warn("bridge request from disallowed origin", "origin", origin, "method", c.Request.Method)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "origin not allowed"})
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

var extensionSchemes = map[string]struct{}{
	"chrome-extension":     {},
	"moz-extension":        {},
	"safari-web-extension": {},
}

func originAllowed(origin string, allowSet map[string]struct{}) bool {
	if _, ok := allowSet[origin]; ok {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	_, ok := extensionSchemes[strings.ToLower(parsed.Scheme)]
	return ok
}
