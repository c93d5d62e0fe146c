package health_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/jonwraymond/appdiscovery/health"
)

func ExampleNewProbe() {
	// Stand-in for the provider's API endpoints
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	probe := health.NewProbe(health.ProbeConfig{
		Endpoints: []string{srv.URL},
	})

	report, err := probe.Check(context.Background(), "api-key")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("Healthy:", report.Healthy)
	fmt.Println("Checked:", report.Checked)
	fmt.Printf("Success rate: %.2f%%\n", report.SuccessRate)
	// Output:
	// Healthy: true
	// Checked: 1
	// Success rate: 100.00%
}

func ExampleReport_Status() {
	healthy := health.Report{Healthy: true, Checked: 2}
	degraded := health.Report{
		Healthy:  true,
		Checked:  2,
		Failures: map[string]string{"https://api.example.com/v2": "status 502"},
	}
	down := health.Report{Checked: 2, Failures: map[string]string{
		"https://api.example.com/v1": "status 503",
		"https://api.example.com/v2": "status 503",
	}}

	fmt.Println(healthy.Status())
	fmt.Println(degraded.Status())
	fmt.Println(down.Status())
	// Output:
	// healthy
	// degraded
	// unhealthy
}

func ExampleLivenessHandler() {
	srv := httptest.NewServer(health.LivenessHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer resp.Body.Close()

	fmt.Println("Status:", resp.StatusCode)
	// Output:
	// Status: 200
}
