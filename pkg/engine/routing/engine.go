package routing

import (
	"context"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/costfunction"
	da "github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/storage"
	"github.com/dynaroute/dynaroute/pkg/util"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

// RoutingEngine answers route requests against the external graph store,
// evaluating the dynamic cost function lazily per edge during search.
// Requests are independent and may run concurrently.
type RoutingEngine struct {
	store        storage.GraphStore
	traffic      costfunction.TrafficProvider
	costFunction costfunction.CostFunction
	log          *zap.Logger
}

func NewRoutingEngine(store storage.GraphStore, traffic costfunction.TrafficProvider,
	costFunction costfunction.CostFunction, log *zap.Logger) *RoutingEngine {
	return &RoutingEngine{
		store:        store,
		traffic:      traffic,
		costFunction: costFunction,
		log:          log,
	}
}

// CalculateRoute finds the least-cost path from origin to destination under
// the criteria's objective.
func (e *RoutingEngine) CalculateRoute(ctx context.Context, originId, destinationId string,
	criteria *costfunction.Criteria) (*da.Route, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	network, err := storage.LoadSubgraph(e.store, originId, destinationId, pkg.BOUNDING_BOX_PADDING_DEGREE)
	if err != nil {
		return nil, err
	}

	return e.searchOnSnapshot(ctx, network, originId, destinationId, criteria)
}

func (e *RoutingEngine) searchOnSnapshot(ctx context.Context, network *da.RoadNetwork,
	originId, destinationId string, criteria *costfunction.Criteria) (*da.Route, error) {
	search := NewAStarSearch(network, e.costFunction)
	nodeIds, edgeIds, totalCost, found, err := search.ShortestPath(ctx, originId, destinationId, criteria)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, util.WrapErrorf(nil, util.ErrNoRouteFound,
			"no route from %s to %s under objective %s", originId, destinationId, criteria.Objective)
	}

	route := e.buildRoute(ctx, network, nodeIds, edgeIds, criteria)

	if err := checkHardConstraints(route, criteria); err != nil {
		return nil, err
	}

	e.log.Info("route calculated",
		zap.String("route_id", route.RouteId),
		zap.String("objective", criteria.Objective.String()),
		zap.Float64("distance_m", route.TotalDistance),
		zap.Float64("travel_time_s", route.TotalTravelTime),
		zap.Float64("objective_cost", totalCost),
		zap.Int("settled_nodes", search.NumSettledNodes()))

	return route, nil
}

// buildRoute materializes the search result: totals in seconds, meters and
// currency units, the derived characteristics and the encoded polyline.
func (e *RoutingEngine) buildRoute(ctx context.Context, network *da.RoadNetwork,
	nodeIds, edgeIds []string, criteria *costfunction.Criteria) *da.Route {
	route := da.NewRoute(nodeIds, edgeIds, criteria.Objective)

	var (
		congestionSum  float64
		weatherSum     float64
		reliabilitySum float64
	)
	for _, edgeId := range edgeIds {
		segment, ok := network.GetSegment(edgeId)
		if !ok {
			continue
		}
		head, _ := network.GetNode(segment.GetToIntersection())

		route.TotalDistance += segment.GetLength()
		route.TotalTravelTime += e.costFunction.TravelTime(ctx, segment, head)
		route.TotalCost += e.costFunction.MonetaryCost(segment)

		if segment.IsTollRoad() {
			route.TollRoads++
		}
		if head != nil && head.HasTrafficLight() {
			route.TrafficLights++
		}

		condition := e.traffic.Condition(ctx, segment.GetId())
		congestionSum += condition.CongestionLevel
		weatherSum += condition.WeatherImpact
		reliabilitySum += condition.Reliability
	}

	if len(edgeIds) > 0 {
		route.CongestionLevel = congestionSum / float64(len(edgeIds))
		route.WeatherImpact = weatherSum / float64(len(edgeIds))
		route.ConfidenceScore = reliabilitySum / float64(len(edgeIds))
	} else {
		route.ConfidenceScore = pkg.DEFAULT_RELIABILITY
	}
	if route.TotalTravelTime > 0 {
		route.AverageSpeed = route.TotalDistance / route.TotalTravelTime * 3.6
	}

	coords := make([][]float64, 0, len(nodeIds))
	for _, nodeId := range nodeIds {
		if node, ok := network.GetNode(nodeId); ok {
			coords = append(coords, []float64{node.GetLat(), node.GetLon()})
		}
	}
	route.Polyline = string(polyline.EncodeCoords(coords))

	return route
}

// checkHardConstraints rejects a route exceeding the caller's hard limits.
// A graph that only connects through a violating route is reported as
// NoRouteFound, the same normal negative outcome as a disconnected graph.
func checkHardConstraints(route *da.Route, criteria *costfunction.Criteria) error {
	if criteria.MaxDistance > 0 && route.TotalDistance > criteria.MaxDistance {
		return util.WrapErrorf(nil, util.ErrNoRouteFound,
			"route distance %.0fm exceeds limit %.0fm", route.TotalDistance, criteria.MaxDistance)
	}
	if criteria.MaxTravelTime > 0 && route.TotalTravelTime > criteria.MaxTravelTime {
		return util.WrapErrorf(nil, util.ErrNoRouteFound,
			"route travel time %.0fs exceeds limit %.0fs", route.TotalTravelTime, criteria.MaxTravelTime)
	}
	if criteria.MaxCost > 0 && route.TotalCost > criteria.MaxCost {
		return util.WrapErrorf(nil, util.ErrNoRouteFound,
			"route cost %.2f exceeds limit %.2f", route.TotalCost, criteria.MaxCost)
	}
	return nil
}

// Recalculate rebuilds the subgraph from the current location and forces a
// fresh weight evaluation. Any previously issued route is discarded, routes
// are never reused past their validity window.
func (e *RoutingEngine) Recalculate(ctx context.Context, routeId, currentLocationId, destinationId string,
	criteria *costfunction.Criteria) (*da.Route, error) {
	e.log.Info("recalculating route",
		zap.String("stale_route_id", routeId),
		zap.String("from", currentLocationId),
		zap.String("to", destinationId))

	return e.CalculateRoute(ctx, currentLocationId, destinationId, criteria)
}
