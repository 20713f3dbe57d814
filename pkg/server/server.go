// Package server exposes the board over HTTP. Handlers only translate
// requests into store calls; every change goes through board.Store.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tableflip.dev/stickies/pkg/board"
)

// Server wires a Store to a gin engine and a websocket hub.
type Server struct {
	store   *board.Store
	hub     *Hub
	logger  *zap.Logger
	now     func() time.Time
	origins []string

	engine      *gin.Engine
	unsubscribe func()
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and hub logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time used for deadline views and reports.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithAllowedOrigins restricts CORS to the given origins. By default every
// origin is allowed.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// New builds the routes and subscribes the hub to store events.
func New(store *board.Store, opts ...Option) *Server {
	s := &Server{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hub = NewHub(s.logger)
	s.unsubscribe = store.Subscribe(s.hub.Broadcast)
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Close detaches from the store and drops websocket clients.
func (s *Server) Close() {
	s.unsubscribe()
	s.hub.Close()
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving board", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if len(s.origins) == 0 {
		r.Use(cors.Default())
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  s.origins,
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	api := r.Group("/api")
	{
		api.GET("/notes", s.listNotes)
		api.POST("/notes", s.createNote)
		api.GET("/notes/:id", s.getNote)
		api.PATCH("/notes/:id", s.patchNote)
		api.DELETE("/notes/:id", s.deleteNote)
		api.PUT("/notes/:id/position", s.putPosition)
		api.PUT("/notes/:id/deadline", s.putDeadline)
		api.PUT("/notes/:id/progress", s.putProgress)
		api.PUT("/notes/:id/page", s.putPage)

		api.POST("/arrange", s.arrange)
		api.POST("/backup", s.backup)
		api.GET("/views/progress", s.progressView)
		api.GET("/views/deadline", s.deadlineView)
		api.GET("/stats", s.stats)
		api.GET("/report", s.report)
		api.GET("/status", s.status)
	}
	r.GET("/ws", s.hub.ServeWS)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
