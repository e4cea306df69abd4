// Package server exposes the board over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/usecase"
)

// Server is the kanban HTTP server.
type Server struct {
	router   *gin.Engine
	registry *prometheus.Registry
	metrics  *metrics
	logger   domain.Logger

	newItem     *usecase.NewItem
	editItem    *usecase.EditItem
	removeItem  *usecase.RemoveItem
	showItem    *usecase.ShowItem
	listItems   *usecase.ListItems
	prioritized *usecase.Prioritized
	history     *usecase.ShowHistory
}

// New creates a server for board. A nil logger discards server logs.
func New(board *usecase.Board, logger domain.Logger) *Server {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	registry := prometheus.NewRegistry()
	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}

	s := &Server{
		router:      router,
		registry:    registry,
		metrics:     newMetrics(registry),
		logger:      logger,
		newItem:     usecase.NewNewItem(board),
		editItem:    usecase.NewEditItem(board),
		removeItem:  usecase.NewRemoveItem(board),
		showItem:    usecase.NewShowItem(board),
		listItems:   usecase.NewListItems(board),
		prioritized: usecase.NewPrioritized(board),
		history:     usecase.NewShowHistory(board),
	}
	router.Use(s.instrument)

	s.registerItemRoutes("/tasks", domain.KindTask)
	s.registerItemRoutes("/epics", domain.KindEpic)
	s.registerItemRoutes("/subtasks", domain.KindSubtask)
	router.GET("/epics/:id/subtasks", s.handleEpicSubtasks)
	router.GET("/history", s.handleHistory)
	router.GET("/prioritized", s.handlePrioritized)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the server's metrics registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("kanban server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("kanban server stopped")
	return nil
}

// instrument records request count and latency per route.
func (s *Server) instrument(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	s.metrics.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	s.metrics.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
}
