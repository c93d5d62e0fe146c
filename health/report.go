package health

import (
	"math"
	"time"
)

// Status represents the provider's aggregate health state.
type Status int

const (
	// StatusHealthy indicates every checked endpoint answered.
	StatusHealthy Status = iota
	// StatusDegraded indicates some endpoints failed but at least one answered.
	StatusDegraded
	// StatusUnhealthy indicates no endpoint answered.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Report is the aggregate outcome of one probe pass. It is what the
// discovery layer caches; individual endpoint results are not retained
// beyond the Failures detail.
type Report struct {
	// Healthy is true when at least one endpoint answered.
	Healthy bool

	// SuccessRate is the percentage of endpoints that answered,
	// rounded to two decimals.
	SuccessRate float64

	// Checked counts the endpoints probed in this pass.
	Checked int

	// Failures maps each failed endpoint to its error text.
	Failures map[string]string

	// CheckedAt is when the pass started.
	CheckedAt time.Time

	// Duration is how long the whole pass took.
	Duration time.Duration
}

// Status classifies the report into the three aggregate states.
func (r Report) Status() Status {
	switch {
	case r.Checked > 0 && len(r.Failures) == 0:
		return StatusHealthy
	case r.Healthy:
		return StatusDegraded
	default:
		return StatusUnhealthy
	}
}

// successRate converts a success count into a two-decimal percentage.
func successRate(succeeded, checked int) float64 {
	if checked == 0 {
		return 0
	}
	return math.Round(float64(succeeded)/float64(checked)*10000) / 100
}
