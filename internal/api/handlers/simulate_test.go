package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finsim/internal/api/models"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/simulate", NewSimulateHandler().RunSimulation)
	return r
}

func postSimulate(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validRequestBody() map[string]any {
	return map[string]any{
		"config": map[string]any{
			"simulation": map[string]any{
				"years": 10,
				"runs":  8,
				"seed":  7,
			},
			"incomes": []map[string]any{
				{"type": "job", "name": "salary", "salary": 60000, "rate": 0.02, "start": 0, "duration": 10},
			},
			"expenses": []map[string]any{
				{"type": "spending", "name": "living", "annual": 40000, "start": 0, "duration": 10},
			},
			"funds": []map[string]any{
				{"type": "fixed", "name": "savings", "rate": 0.03, "start": 0},
			},
		},
		"options": map[string]any{"include_runs": true},
	}
}

func TestRunSimulation(t *testing.T) {
	w := postSimulate(t, newTestRouter(), validRequestBody())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.SimulateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "completed" {
		t.Errorf("expected status completed, got %q", resp.Status)
	}
	if resp.Summary.Runs != 8 {
		t.Errorf("expected 8 runs in summary, got %d", resp.Summary.Runs)
	}
	if resp.Summary.Bankruptcies != 0 {
		t.Errorf("surplus household should not go bankrupt, got %d bankruptcies", resp.Summary.Bankruptcies)
	}
	if resp.Summary.MedianFinal <= 0 {
		t.Errorf("expected a positive median final value, got %v", resp.Summary.MedianFinal)
	}
	if len(resp.Runs) != 8 {
		t.Fatalf("expected 8 run rows, got %d", len(resp.Runs))
	}
	for i, r := range resp.Runs {
		if r.Status != "okay" {
			t.Errorf("run %d: expected status okay, got %q", i, r.Status)
		}
	}
}

func TestRunSimulationOmitsRunsByDefault(t *testing.T) {
	body := validRequestBody()
	delete(body, "options")

	w := postSimulate(t, newTestRouter(), body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.SimulateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Runs) != 0 {
		t.Errorf("expected no run rows without include_runs, got %d", len(resp.Runs))
	}
}

func TestRunSimulationInvalidConfig(t *testing.T) {
	body := validRequestBody()
	cfg := body["config"].(map[string]any)
	cfg["funds"] = []map[string]any{
		{"type": "market", "name": "index", "start": 0},
	}

	w := postSimulate(t, newTestRouter(), body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_CONFIG" {
		t.Errorf("expected INVALID_CONFIG, got %q", resp.Error.Code)
	}
}

func TestRunSimulationMalformedBody(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_REQUEST" {
		t.Errorf("expected INVALID_REQUEST, got %q", resp.Error.Code)
	}
}
