package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stormlabs/stormgraph/pkg/validation"
)

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.ValidateGraph())
}

func (s *Server) handleMethodology(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.ValidateMethodology())
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.DetectCircularDependencies())
}

// handleImpact serves GET /impact/{id}.
func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/impact/")
	analysis := s.engine.GetChangeImpactAnalysis(id)
	if analysis == nil {
		writeError(w, http.StatusNotFound, "node not found")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleCritical(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.FindCriticalNodes())
}

// handleAggregates serves GET /aggregates (all views) and
// GET /aggregates?actor={id} (views reachable from an actor).
func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if actorID := r.URL.Query().Get("actor"); actorID != "" {
		writeJSON(w, http.StatusOK, s.engine.GetAggregatesByActor(actorID))
		return
	}
	writeJSON(w, http.StatusOK, s.engine.GetAllAggregateViews())
}

// handleAggregate serves GET /aggregates/{id}/view and
// GET /aggregates/{id}/health.
func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/aggregates/")
	id, sub, _ := strings.Cut(rest, "/")

	switch sub {
	case "view", "":
		view := s.engine.GetAggregateView(id)
		if view == nil {
			writeError(w, http.StatusNotFound, "aggregate not found")
			return
		}
		writeJSON(w, http.StatusOK, view)
	case "health":
		health := s.engine.AnalyzeAggregateHealth(id)
		if health == nil {
			writeError(w, http.StatusNotFound, "aggregate not found")
			return
		}
		writeJSON(w, http.StatusOK, health)
	default:
		writeError(w, http.StatusNotFound, "unknown aggregate resource")
	}
}

// handleProcesses serves GET /processes (all flows) and
// GET /processes?event={id} (flows producing an event).
func (s *Server) handleProcesses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if eventID := r.URL.Query().Get("event"); eventID != "" {
		writeJSON(w, http.StatusOK, s.engine.GetProcessesByEvent(eventID))
		return
	}
	writeJSON(w, http.StatusOK, s.engine.GetAllProcessFlows())
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/statistics":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"statistics": s.engine.GetStatistics(),
			"health":     s.engine.GetGraphHealthMetrics(),
		})
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// decodeBody parses a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return false
	}
	return true
}

// writeResult maps a validation result onto an HTTP status: 200 when the
// mutation committed, 422 when it was rejected. The body is the result
// either way, so clients always check isValid.
func writeResult(w http.ResponseWriter, result *validation.Result) {
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}
