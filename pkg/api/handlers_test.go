package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hublabel/pkg/graph"
)

// mockOracle implements pathfinding.Oracle for testing.
type mockOracle struct {
	dist graph.Distance
}

func (m *mockOracle) FindDistance(source, target graph.Node) graph.Distance {
	return m.dist
}

func TestHandleDistance_Success(t *testing.T) {
	h := NewHandlers(&mockOracle{dist: 42}, 100, StatsResponse{NumNodes: 100})

	body := `{"source":1,"target":5}`
	req := httptest.NewRequest("POST", "/api/v1/distance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleDistance(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp DistanceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Reachable || resp.Distance != 42 {
		t.Errorf("resp = %+v, want {Distance:42 Reachable:true}", resp)
	}
}

func TestHandleDistance_Unreachable(t *testing.T) {
	h := NewHandlers(&mockOracle{dist: graph.UNREACHABLE}, 100, StatsResponse{})

	body := `{"source":1,"target":5}`
	req := httptest.NewRequest("POST", "/api/v1/distance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleDistance(w, req)

	var resp DistanceResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Reachable {
		t.Errorf("Reachable = true, want false for UNREACHABLE distance")
	}
}

func TestHandleDistance_InvalidJSON(t *testing.T) {
	h := NewHandlers(&mockOracle{}, 100, StatsResponse{})

	req := httptest.NewRequest("POST", "/api/v1/distance", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleDistance(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleDistance_MissingContentType(t *testing.T) {
	h := NewHandlers(&mockOracle{}, 100, StatsResponse{})

	body := `{"source":1,"target":5}`
	req := httptest.NewRequest("POST", "/api/v1/distance", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.HandleDistance(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleDistance_InvalidNode(t *testing.T) {
	h := NewHandlers(&mockOracle{}, 10, StatsResponse{})

	body := `{"source":20,"target":5}`
	req := httptest.NewRequest("POST", "/api/v1/distance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleDistance(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(&mockOracle{}, 0, StatsResponse{})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp HealthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want 'ok'", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	stats := StatsResponse{NumNodes: 500000, NumSelections: 12345, AverageSelectionsPerNode: 3.4}
	h := NewHandlers(&mockOracle{}, 500000, stats)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()

	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.NumNodes != 500000 {
		t.Errorf("NumNodes = %d, want 500000", resp.NumNodes)
	}
}
