package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLivenessHandler(t *testing.T) {
	handler := LivenessHandler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", rec.Body.String())
	}
}

func TestProbeHandler_Healthy(t *testing.T) {
	srv := statusServer(t, http.StatusOK)
	p := NewProbe(ProbeConfig{Endpoints: []string{srv.URL}})

	handler := ProbeHandler(p, "test-key")
	req := httptest.NewRequest(http.MethodGet, "/health/provider", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Status != "healthy" || !resp.Healthy {
		t.Errorf("response = %+v, want healthy", resp)
	}
	if resp.SuccessRate != 100 {
		t.Errorf("SuccessRate = %v, want 100", resp.SuccessRate)
	}
}

func TestProbeHandler_Unhealthy(t *testing.T) {
	srv := statusServer(t, http.StatusInternalServerError)
	p := NewProbe(ProbeConfig{Endpoints: []string{srv.URL}})

	handler := ProbeHandler(p, "")
	req := httptest.NewRequest(http.MethodGet, "/health/provider", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Status != "unhealthy" || resp.Healthy {
		t.Errorf("response = %+v, want unhealthy", resp)
	}
	if len(resp.Failures) != 1 {
		t.Errorf("Failures = %v, want the failing endpoint", resp.Failures)
	}
}

func TestProbeHandler_NoEndpoints(t *testing.T) {
	p := NewProbe(ProbeConfig{})

	handler := ProbeHandler(p, "")
	req := httptest.NewRequest(http.MethodGet, "/health/provider", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error detail in the response")
	}
}
