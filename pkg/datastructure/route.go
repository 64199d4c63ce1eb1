package datastructure

import (
	"time"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/google/uuid"
)

// Route is an ephemeral search result. It expires after its validity window
// and must then be recomputed, never reused.
type Route struct {
	RouteId         string        `json:"route_id"`
	NodeIds         []string      `json:"node_ids"`
	EdgeIds         []string      `json:"edge_ids"`
	Objective       pkg.Objective `json:"-"`
	ObjectiveName   string        `json:"objective"`
	TotalDistance   float64       `json:"total_distance"`    // meters
	TotalTravelTime float64       `json:"total_travel_time"` // seconds
	TotalCost       float64       `json:"total_cost"`        // abstract currency units
	ConfidenceScore float64       `json:"confidence_score"`  // 0.0 .. 1.0
	Polyline        string        `json:"polyline"`
	CalculatedAt    time.Time     `json:"calculated_at"`
	ValidUntil      time.Time     `json:"valid_until"`

	// derived characteristics
	TrafficLights   int     `json:"traffic_lights"`
	TollRoads       int     `json:"toll_roads"`
	AverageSpeed    float64 `json:"average_speed"`    // km/h
	CongestionLevel float64 `json:"congestion_level"` // 0.0 .. 1.0
	WeatherImpact   float64 `json:"weather_impact"`   // 0.0 .. 1.0
}

func NewRoute(nodeIds, edgeIds []string, objective pkg.Objective) *Route {
	now := time.Now()
	return &Route{
		RouteId:       uuid.NewString(),
		NodeIds:       nodeIds,
		EdgeIds:       edgeIds,
		Objective:     objective,
		ObjectiveName: objective.String(),
		CalculatedAt:  now,
		ValidUntil:    now.Add(pkg.ROUTE_VALIDITY_MINUTES * time.Minute),
	}
}

func (r *Route) IsValidAt(now time.Time) bool {
	return now.Before(r.ValidUntil)
}

func (r *Route) GetStartNodeId() string {
	if len(r.NodeIds) == 0 {
		return ""
	}
	return r.NodeIds[0]
}

func (r *Route) GetEndNodeId() string {
	if len(r.NodeIds) == 0 {
		return ""
	}
	return r.NodeIds[len(r.NodeIds)-1]
}
