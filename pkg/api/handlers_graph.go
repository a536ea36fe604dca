package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/stormlabs/stormgraph/pkg/engine"
	"github.com/stormlabs/stormgraph/pkg/storage"
	"github.com/stormlabs/stormgraph/pkg/validation"
)

// handleGraph serves GET /graph (export snapshot) and PUT /graph (load
// snapshot, fully replacing graph content).
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.engine.GetGraph())
	case http.MethodPut:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		writeResult(w, s.engine.LoadSnapshot(data))
	default:
		methodNotAllowed(w)
	}
}

// handleNodes serves POST /nodes (add) and GET /nodes?type= (list by type).
func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req validation.NodeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := validation.ValidateNodeRequest(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeResult(w, s.engine.AddNode(&storage.Node{
			ID:    req.ID,
			Label: req.Label,
			Type:  storage.NodeType(req.Type),
			Ext:   req.Ext,
		}))
	case http.MethodGet:
		nodeType := r.URL.Query().Get("type")
		if nodeType == "" {
			writeJSON(w, http.StatusOK, s.engine.GetGraph().Nodes)
			return
		}
		writeJSON(w, http.StatusOK, s.engine.GetNodesByType(storage.NodeType(nodeType)))
	default:
		methodNotAllowed(w)
	}
}

// handleNode serves GET/PATCH/DELETE /nodes/{id} and GET /nodes/{id}/edges.
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/nodes/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing node id")
		return
	}

	if sub == "edges" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, s.engine.GetNodeEdges(id))
		return
	}

	switch r.Method {
	case http.MethodGet:
		node := s.engine.GetNode(id)
		if node == nil {
			writeError(w, http.StatusNotFound, "node not found")
			return
		}
		writeJSON(w, http.StatusOK, node)
	case http.MethodPatch:
		var req struct {
			Label string         `json:"label"`
			Ext   map[string]any `json:"ext"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		writeResult(w, s.engine.UpdateNode(id, req.Label, req.Ext))
	case http.MethodDelete:
		writeResult(w, s.engine.RemoveNode(id))
	default:
		methodNotAllowed(w)
	}
}

// handleEdges serves POST /edges (add) and DELETE /edges (remove by triple).
func (s *Server) handleEdges(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req validation.EdgeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := validation.ValidateEdgeRequest(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeResult(w, s.engine.AddEdge(storage.Edge{
			Source: req.Source,
			Target: req.Target,
			Label:  storage.RelationLabel(req.Label),
		}))
	case http.MethodDelete:
		var req validation.EdgeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		writeResult(w, s.engine.RemoveEdge(
			req.Source, storage.RelationLabel(req.Label), req.Target))
	default:
		methodNotAllowed(w)
	}
}

// handleCommandFlow serves POST /flows, the compound 4-node/3-edge helper.
func (s *Server) handleCommandFlow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var spec engine.CommandFlowSpec
	if !decodeBody(w, r, &spec) {
		return
	}
	writeResult(w, s.engine.CreateCommandFlow(spec))
}

// handleCommand serves per-command sub-resources:
// POST /commands/{id}/guards and /commands/{id}/preconditions,
// GET /commands/{id}/flow and /commands/{id}/paths.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/commands/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing command id")
		return
	}

	switch {
	case sub == "guards" && r.Method == http.MethodPost:
		var items []engine.GuardSpec
		if !decodeBody(w, r, &items) {
			return
		}
		writeResult(w, s.engine.AddCommandGuards(id, items))
	case sub == "preconditions" && r.Method == http.MethodPost:
		var items []engine.GuardSpec
		if !decodeBody(w, r, &items) {
			return
		}
		writeResult(w, s.engine.AddCommandPreconditions(id, items))
	case sub == "flow" && r.Method == http.MethodGet:
		flow := s.engine.GetProcessFlow(id)
		if flow == nil {
			writeError(w, http.StatusNotFound, "command not found")
			return
		}
		writeJSON(w, http.StatusOK, flow)
	case sub == "paths" && r.Method == http.MethodGet:
		paths := s.engine.GetCommandExecutionPaths(id)
		if paths == nil {
			writeError(w, http.StatusNotFound, "command not found")
			return
		}
		writeJSON(w, http.StatusOK, paths)
	default:
		writeError(w, http.StatusNotFound, "unknown command resource")
	}
}
