package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// BenchmarkProbe_Check measures a full probe pass against one endpoint.
func BenchmarkProbe_Check(b *testing.B) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProbe(ProbeConfig{Endpoints: []string{srv.URL}})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Check(ctx, "key")
	}
}

// BenchmarkProbe_Check_MultiEndpoint measures parallel fan-out overhead.
func BenchmarkProbe_Check_MultiEndpoint(b *testing.B) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProbe(ProbeConfig{
		Endpoints: []string{srv.URL, srv.URL + "/v1", srv.URL + "/v2", srv.URL + "/v3"},
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Check(ctx, "key")
	}
}

// BenchmarkSuccessRate measures rate arithmetic.
func BenchmarkSuccessRate(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = successRate(2, 3)
	}
}

// BenchmarkReport_Status measures status classification.
func BenchmarkReport_Status(b *testing.B) {
	report := Report{
		Healthy:  true,
		Checked:  3,
		Failures: map[string]string{"https://api.example.com/v2": "status 502"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = report.Status()
	}
}
