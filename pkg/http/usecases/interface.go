package usecases

import (
	"context"

	"github.com/dynaroute/dynaroute/pkg/costfunction"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/spatialindex"
)

type RouteCalculator interface {
	CalculateRoute(ctx context.Context, originId, destinationId string,
		criteria *costfunction.Criteria) (*datastructure.Route, error)
	CalculateAlternatives(ctx context.Context, originId, destinationId string,
		criteria *costfunction.Criteria, maxCount int) ([]*datastructure.Route, error)
	Recalculate(ctx context.Context, routeId, currentLocationId, destinationId string,
		criteria *costfunction.Criteria) (*datastructure.Route, error)
}

type SpatialIndex interface {
	Nearest(qLat, qLon, maxRadius float64) (spatialindex.SegmentEntry, bool)
}

type SegmentResolver interface {
	FindSegment(segmentId string) (*datastructure.RoadSegment, bool)
}
