package controllers

import (
	"time"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/costfunction"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/traffic"
	"github.com/dynaroute/dynaroute/pkg/util"
)

type criteriaRequest struct {
	Objective string `json:"objective" validate:"required"`

	MaxDistance   float64 `json:"max_distance" validate:"omitempty,min=0"`
	MaxTravelTime float64 `json:"max_travel_time" validate:"omitempty,min=0"`
	MaxCost       float64 `json:"max_cost" validate:"omitempty,min=0"`

	AvoidTolls    bool `json:"avoid_tolls"`
	AvoidHighways bool `json:"avoid_highways"`
	PreferScenic  bool `json:"prefer_scenic"`

	VehicleType string `json:"vehicle_type"`

	TimeWeight     *float64 `json:"time_weight" validate:"omitempty,min=0,max=1"`
	DistanceWeight *float64 `json:"distance_weight" validate:"omitempty,min=0,max=1"`
	CostWeight     *float64 `json:"cost_weight" validate:"omitempty,min=0,max=1"`
	ComfortWeight  *float64 `json:"comfort_weight" validate:"omitempty,min=0,max=1"`
	SafetyWeight   *float64 `json:"safety_weight" validate:"omitempty,min=0,max=1"`
}

// toCriteria builds search criteria from the request, keeping the default
// weight vector for any weight the caller omitted.
func (cr *criteriaRequest) toCriteria() (*costfunction.Criteria, error) {
	objective := pkg.GetObjective(cr.Objective)
	if objective == pkg.INVALID_OBJECTIVE {
		return nil, util.WrapErrorf(nil, util.ErrInvalidCriteria, "unknown objective %q", cr.Objective)
	}

	criteria := costfunction.NewCriteria(objective)
	criteria.MaxDistance = cr.MaxDistance
	criteria.MaxTravelTime = cr.MaxTravelTime
	criteria.MaxCost = cr.MaxCost
	criteria.AvoidTolls = cr.AvoidTolls
	criteria.AvoidHighways = cr.AvoidHighways
	criteria.PreferScenic = cr.PreferScenic
	if cr.VehicleType != "" {
		criteria.VehicleType = pkg.GetVehicleType(cr.VehicleType)
	}

	if cr.TimeWeight != nil {
		criteria.TimeWeight = *cr.TimeWeight
	}
	if cr.DistanceWeight != nil {
		criteria.DistanceWeight = *cr.DistanceWeight
	}
	if cr.CostWeight != nil {
		criteria.CostWeight = *cr.CostWeight
	}
	if cr.ComfortWeight != nil {
		criteria.ComfortWeight = *cr.ComfortWeight
	}
	if cr.SafetyWeight != nil {
		criteria.SafetyWeight = *cr.SafetyWeight
	}

	return criteria, criteria.Validate()
}

type computeRouteRequest struct {
	OriginLat      float64          `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64          `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64          `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64          `json:"destination_lon" validate:"min=-180,max=180"`
	Criteria       *criteriaRequest `json:"criteria" validate:"required"`
}

type alternativeRoutesRequest struct {
	OriginLat       float64          `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon       float64          `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat  float64          `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon  float64          `json:"destination_lon" validate:"min=-180,max=180"`
	MaxAlternatives int              `json:"max_alternatives" validate:"required,min=1,max=5"`
	Criteria        *criteriaRequest `json:"criteria" validate:"required"`
}

type recalculateRequest struct {
	RouteId        string           `json:"route_id" validate:"required"`
	CurrentLat     float64          `json:"current_lat" validate:"min=-90,max=90"`
	CurrentLon     float64          `json:"current_lon" validate:"min=-180,max=180"`
	DestinationLat float64          `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64          `json:"destination_lon" validate:"min=-180,max=180"`
	Criteria       *criteriaRequest `json:"criteria" validate:"required"`
}

type trafficReadingRequest struct {
	Source        string  `json:"source" validate:"required"`
	SegmentId     string  `json:"segment_id" validate:"required"`
	Speed         float64 `json:"speed" validate:"min=0"`
	Congestion    float64 `json:"congestion" validate:"min=0,max=1"`
	Density       float64 `json:"density" validate:"omitempty,min=0"`
	FlowRate      float64 `json:"flow_rate" validate:"omitempty,min=0"`
	Precipitation float64 `json:"precipitation" validate:"omitempty,min=0"`
	Visibility    float64 `json:"visibility" validate:"omitempty,min=0"`
}

func (tr *trafficReadingRequest) toReading() *traffic.Reading {
	return &traffic.Reading{
		SegmentId:     tr.SegmentId,
		Speed:         tr.Speed,
		Congestion:    tr.Congestion,
		Density:       tr.Density,
		FlowRate:      tr.FlowRate,
		Precipitation: tr.Precipitation,
		Visibility:    tr.Visibility,
		Source:        tr.Source,
		Timestamp:     time.Now(),
	}
}

type reportIncidentRequest struct {
	Type            string  `json:"type" validate:"required"`
	Severity        string  `json:"severity" validate:"required"`
	Lat             float64 `json:"lat" validate:"min=-90,max=90"`
	Lon             float64 `json:"lon" validate:"min=-180,max=180"`
	Radius          float64 `json:"radius" validate:"required,min=1"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1"`
}

type incidentResponse struct {
	Id          string    `json:"id"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Radius      float64   `json:"radius"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

func NewIncidentResponse(inc *datastructure.Incident) incidentResponse {
	return incidentResponse{
		Id:          inc.GetId(),
		Type:        inc.GetType().String(),
		Severity:    inc.GetSeverity().String(),
		Lat:         inc.GetLat(),
		Lon:         inc.GetLon(),
		Radius:      inc.GetRadius(),
		Description: inc.GetDescription(),
		StartTime:   inc.GetStartTime(),
		EndTime:     inc.GetEndTime(),
	}
}

func NewIncidentsResponse(incidents []*datastructure.Incident) []incidentResponse {
	out := make([]incidentResponse, 0, len(incidents))
	for _, inc := range incidents {
		out = append(out, NewIncidentResponse(inc))
	}
	return out
}
