package usecases

import (
	"context"

	"github.com/dynaroute/dynaroute/pkg/costfunction"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/geo"
	"github.com/dynaroute/dynaroute/pkg/util"
	"go.uber.org/zap"
)

type RoutingService struct {
	log          *zap.Logger
	engine       RouteCalculator
	spatialIndex SpatialIndex
	segments     SegmentResolver
	searchRadius float64 // snapping radius in meters
}

func NewRoutingService(log *zap.Logger, engine RouteCalculator, spatialIndex SpatialIndex,
	segments SegmentResolver, searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		segments:     segments,
		searchRadius: searchRadius,
	}
}

// snapToNode resolves a raw coordinate to the closer endpoint of the nearest
// road segment.
func (rs *RoutingService) snapToNode(lat, lon float64) (string, error) {
	entry, found := rs.spatialIndex.Nearest(lat, lon, rs.searchRadius)
	if !found {
		return "", util.WrapErrorf(nil, util.ErrInvalidEndpoint,
			"no road segment within %.0fm of %f,%f", rs.searchRadius, lat, lon)
	}
	segment, ok := rs.segments.FindSegment(entry.GetSegmentId())
	if !ok {
		return "", util.WrapErrorf(nil, util.ErrInvalidEndpoint,
			"segment %s vanished from the road network", entry.GetSegmentId())
	}

	from, to := entry.GetFrom(), entry.GetTo()
	distFrom := geo.HaversineDistanceMeters(lat, lon, from.GetLat(), from.GetLon())
	distTo := geo.HaversineDistanceMeters(lat, lon, to.GetLat(), to.GetLon())
	if distFrom <= distTo {
		return segment.GetFromIntersection(), nil
	}
	return segment.GetToIntersection(), nil
}

func (rs *RoutingService) snapOriginDestination(origLat, origLon, dstLat, dstLon float64) (string, string, error) {
	originId, err := rs.snapToNode(origLat, origLon)
	if err != nil {
		return "", "", err
	}
	destinationId, err := rs.snapToNode(dstLat, dstLon)
	if err != nil {
		return "", "", err
	}
	return originId, destinationId, nil
}

func (rs *RoutingService) CalculateRoute(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
	criteria *costfunction.Criteria) (*datastructure.Route, error) {
	originId, destinationId, err := rs.snapOriginDestination(origLat, origLon, dstLat, dstLon)
	if err != nil {
		return nil, err
	}
	return rs.engine.CalculateRoute(ctx, originId, destinationId, criteria)
}

func (rs *RoutingService) CalculateAlternatives(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
	criteria *costfunction.Criteria, maxCount int) ([]*datastructure.Route, error) {
	originId, destinationId, err := rs.snapOriginDestination(origLat, origLon, dstLat, dstLon)
	if err != nil {
		return nil, err
	}
	return rs.engine.CalculateAlternatives(ctx, originId, destinationId, criteria, maxCount)
}

func (rs *RoutingService) Recalculate(ctx context.Context, routeId string, currentLat, currentLon, dstLat, dstLon float64,
	criteria *costfunction.Criteria) (*datastructure.Route, error) {
	currentId, destinationId, err := rs.snapOriginDestination(currentLat, currentLon, dstLat, dstLon)
	if err != nil {
		return nil, err
	}
	return rs.engine.Recalculate(ctx, routeId, currentId, destinationId, criteria)
}
