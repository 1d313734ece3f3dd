package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/pokedex-service/internal/metrics"
	"github.com/maxviazov/pokedex-service/pkg/response"
)

const requestIDKey = "request_id"

// RouterOptions configures the engine built by NewRouter.
type RouterOptions struct {
	Logger zerolog.Logger
	// Metrics is optional; nil disables request metrics and the /metrics endpoint.
	Metrics *metrics.Metrics
	// ExposeDetails adds internal error text to 500 responses (dev only).
	ExposeDetails bool
}

// NewRouter returns a gin engine with the standard middleware chain installed.
// Routes are mounted separately via Register.
// It also makes JSON binding reject unknown body fields, which is a process-wide gin setting.
func NewRouter(opts RouterOptions) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true
	r := gin.New()
	r.Use(RequestID(), AccessLog(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	r.Use(response.ExposeDetails(opts.ExposeDetails), Recovery())
	return r
}

// RequestID propagates an inbound X-Request-ID or generates a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one structured line per request.
// 5xx log at error level, 4xx at warn, the rest at info.
func AccessLog(logger zerolog.Logger) gin.HandlerFunc {
	l := logger.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		if err := c.Errors.Last(); err != nil {
			ev = ev.Err(err.Err)
		}
		ev.Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

// Recovery turns a handler panic into the standard 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		response.WriteError(c, fmt.Errorf("panic: %v", rec))
	})
}
