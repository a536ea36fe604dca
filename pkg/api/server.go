// Package api exposes the graph engine's mutation and query operations over
// HTTP with JSON payloads. The API is a thin shell: every rule lives in the
// engine and its validation tiers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stormlabs/stormgraph/pkg/engine"
	"github.com/stormlabs/stormgraph/pkg/logging"
)

// Server is the HTTP API server.
type Server struct {
	engine    *engine.Engine
	logger    logging.Logger
	gatherer  prometheus.Gatherer
	startTime time.Time
	version   string
	port      int

	httpServer *http.Server
}

// NewServer creates an API server around an engine instance.
func NewServer(eng *engine.Engine, logger logging.Logger, gatherer prometheus.Gatherer, port int) *Server {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Server{
		engine:    eng,
		logger:    logger,
		gatherer:  gatherer,
		startTime: time.Now(),
		version:   "1.0.0",
		port:      port,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("/health", s.handleHealth)
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// Graph snapshot
	mux.HandleFunc("/graph", s.handleGraph)

	// Node and edge mutations
	mux.HandleFunc("/nodes", s.handleNodes)
	mux.HandleFunc("/nodes/", s.handleNode) // /nodes/{id}
	mux.HandleFunc("/edges", s.handleEdges)

	// Compound helpers
	mux.HandleFunc("/flows", s.handleCommandFlow)
	mux.HandleFunc("/commands/", s.handleCommand) // /commands/{id}/...

	// Validation and analysis
	mux.HandleFunc("/validate", s.handleValidate)
	mux.HandleFunc("/methodology", s.handleMethodology)
	mux.HandleFunc("/cycles", s.handleCycles)
	mux.HandleFunc("/impact/", s.handleImpact) // /impact/{id}
	mux.HandleFunc("/critical", s.handleCritical)
	mux.HandleFunc("/aggregates", s.handleAggregates)
	mux.HandleFunc("/aggregates/", s.handleAggregate) // /aggregates/{id}/...
	mux.HandleFunc("/processes", s.handleProcesses)
	mux.HandleFunc("/statistics", s.handleStatistics)

	return mux
}

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("api server listening", logging.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.engine.GetStatistics()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"version": s.version,
		"uptime":  time.Since(s.startTime).String(),
		"nodes":   stats.NodeCount,
		"edges":   stats.EdgeCount,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
