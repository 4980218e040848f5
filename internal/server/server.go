package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/piwi3910/FormPanel/internal/engine"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 10 << 20

// Server serves the optimizer over HTTP. All handlers share one Optimizer,
// which is safe for concurrent runs.
type Server struct {
	opt     *engine.Optimizer
	logger  *zap.Logger
	workers int
	router  *gin.Engine
}

// New builds a server around opt. workers limits concurrent runs of one
// /compare request. A nil logger disables logging.
func New(opt *engine.Optimizer, logger *zap.Logger, workers int) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		opt:     opt.WithLogger(logger),
		logger:  logger,
		workers: workers,
	}

	r := gin.New()
	r.Use(requestID(), accessLog(logger), gin.Recovery())
	r.GET("/healthz", s.handleHealth)
	r.GET("/catalog", s.handleCatalog)
	r.POST("/optimize", s.handleOptimize)
	r.POST("/compare", s.handleCompare)
	r.POST("/export/:format", s.handleExport)
	s.router = r
	return s
}

// Handler returns the HTTP handler with all routes installed.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
