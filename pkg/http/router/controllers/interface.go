package controllers

import (
	"context"

	"github.com/dynaroute/dynaroute/pkg/costfunction"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/traffic"
)

type RoutingService interface {
	CalculateRoute(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
		criteria *costfunction.Criteria) (*datastructure.Route, error)
	CalculateAlternatives(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
		criteria *costfunction.Criteria, maxCount int) ([]*datastructure.Route, error)
	Recalculate(ctx context.Context, routeId string, currentLat, currentLon, dstLat, dstLon float64,
		criteria *costfunction.Criteria) (*datastructure.Route, error)
}

type TrafficService interface {
	Condition(ctx context.Context, segmentId string) (*datastructure.TrafficCondition, error)
	ReportReading(ctx context.Context, sourceName string, reading *traffic.Reading) error
}

type IncidentService interface {
	Report(ctx context.Context, incidentType, severity string, lat, lon, radius float64,
		description string, durationMinutes int) (*datastructure.Incident, error)
	Resolve(ctx context.Context, incidentId string) error
	ActiveNear(ctx context.Context, lat, lon, radius float64) ([]*datastructure.Incident, error)
}
