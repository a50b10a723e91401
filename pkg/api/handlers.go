package api

import (
	"mime"
	"net/http"

	"hublabel/pkg/graph"
	"hublabel/pkg/pathfinding"
)

// Handlers holds the HTTP handlers and their dependencies. The oracle is
// whatever satisfies pathfinding.Oracle: an AllPairsCache, a ch.Oracle, or
// a finalized selection.Lookup, chosen by cmd/server at startup.
type Handlers struct {
	oracle   pathfinding.Oracle
	numNodes uint32
	stats    StatsResponse
}

// NewHandlers creates handlers with the given oracle and pre-computed stats.
func NewHandlers(oracle pathfinding.Oracle, numNodes uint32, stats StatsResponse) *Handlers {
	return &Handlers{oracle: oracle, numNodes: numNodes, stats: stats}
}

// HandleDistance handles POST /api/v1/distance.
func (h *Handlers) HandleDistance(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req DistanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	if req.Source >= h.numNodes {
		writeError(w, http.StatusBadRequest, "invalid_node", "source")
		return
	}
	if req.Target >= h.numNodes {
		writeError(w, http.StatusBadRequest, "invalid_node", "target")
		return
	}

	dist := h.oracle.FindDistance(req.Source, req.Target)
	resp := DistanceResponse{Reachable: dist < graph.UNREACHABLE}
	if resp.Reachable {
		resp.Distance = dist
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field})
}
