package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// LivenessHandler returns an HTTP handler for liveness probes.
// It only proves the process is serving requests.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// ReportResponse is the JSON body written by ProbeHandler.
type ReportResponse struct {
	Status      string            `json:"status"`
	Healthy     bool              `json:"healthy"`
	SuccessRate float64           `json:"success_rate"`
	Checked     int               `json:"checked"`
	Failures    map[string]string `json:"failures,omitempty"`
	CheckedAt   string            `json:"checked_at,omitempty"`
	Duration    string            `json:"duration,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// ProbeHandler returns an HTTP handler that runs the probe and writes the
// aggregate report as JSON. A healthy or degraded provider answers 200; an
// unreachable one answers 503.
func ProbeHandler(p *Probe, credential string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")

		report, err := p.Check(ctx, credential)
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(ReportResponse{
				Status: StatusUnhealthy.String(),
				Error:  err.Error(),
			})
			return
		}

		if report.Healthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		_ = json.NewEncoder(w).Encode(ReportResponse{
			Status:      report.Status().String(),
			Healthy:     report.Healthy,
			SuccessRate: report.SuccessRate,
			Checked:     report.Checked,
			Failures:    report.Failures,
			CheckedAt:   report.CheckedAt.UTC().Format(time.RFC3339),
			Duration:    report.Duration.String(),
		})
	}
}
