package datastructure

import (
	"time"
)

// TrafficCondition is the per-segment live traffic estimate. Congestion level
// and current speed are inversely related but independently observed, so they
// may be briefly inconsistent; the weight function only combines them in a
// bounded way and never reconciles them.
type TrafficCondition struct {
	SegmentId       string    `json:"segment_id"`
	CurrentSpeed    float64   `json:"current_speed"`    // km/h
	CongestionLevel float64   `json:"congestion_level"` // 0.0 free flow .. 1.0 gridlock
	TrafficDensity  float64   `json:"traffic_density"`  // vehicles per km
	FlowRate        float64   `json:"flow_rate"`        // vehicles per hour
	WeatherImpact   float64   `json:"weather_impact"`   // 0.0 .. 1.0
	Precipitation   float64   `json:"precipitation"`    // mm/hour
	Visibility      float64   `json:"visibility"`       // meters
	Reliability     float64   `json:"reliability"`      // 0.0 .. 1.0
	Timestamp       time.Time `json:"timestamp"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// IsStale reports whether the condition is older than the freshness
// threshold. Stale conditions must be refreshed before weight computation.
func (tc *TrafficCondition) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(tc.Timestamp) > ttl
}

// TrafficLevel is a human readable congestion label.
func (tc *TrafficCondition) TrafficLevel() string {
	switch {
	case tc.CongestionLevel < 0.2:
		return "Very Light"
	case tc.CongestionLevel < 0.4:
		return "Light"
	case tc.CongestionLevel < 0.6:
		return "Moderate"
	case tc.CongestionLevel < 0.8:
		return "Heavy"
	default:
		return "Very Heavy"
	}
}
