package routing

import (
	"context"
	"testing"
	"time"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/costfunction"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/geo"
	"github.com/dynaroute/dynaroute/pkg/incident"
	"github.com/dynaroute/dynaroute/pkg/spatialindex"
	"github.com/dynaroute/dynaroute/pkg/storage"
	"github.com/dynaroute/dynaroute/pkg/traffic"
	"github.com/dynaroute/dynaroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var offPeakWednesday = time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)

// buildTestStore builds a triangle with three ways from a to c:
//   - a direct tolled highway (fast, 2300m)
//   - a two-hop arterial detour via b (3200m, slower)
//   - a two-hop local shortcut via d (2260m, slowest but shortest)
//
// Declared lengths always exceed the straight-line distance, so every
// heuristic underestimates.
func buildTestStore(t *testing.T) *storage.InMemoryGraphStore {
	t.Helper()

	store := storage.NewInMemoryGraphStore()
	store.AddIntersection(datastructure.NewIntersection("a", 0, 0, 0))
	store.AddIntersection(datastructure.NewIntersection("b", 0.01, 0.01, 0))
	store.AddIntersection(datastructure.NewIntersection("c", 0, 0.02, 0))
	store.AddIntersection(datastructure.NewIntersection("d", 0.001, 0.01, 0))
	store.AddIntersection(datastructure.NewIntersection("isolated", 0.005, 0.005, 0))

	segments := []*datastructure.RoadSegment{
		datastructure.NewRoadSegment("direct", "a", "c", "Expressway", pkg.HIGHWAY,
			2300, 100, 4, false, true, 0, "asphalt"),
		datastructure.NewRoadSegment("ab", "a", "b", "North Avenue", pkg.ARTERIAL,
			1600, 50, 2, false, false, 0, "asphalt"),
		datastructure.NewRoadSegment("bc", "b", "c", "East Avenue", pkg.ARTERIAL,
			1600, 50, 2, false, false, 0, "asphalt"),
		datastructure.NewRoadSegment("ad", "a", "d", "Old Lane", pkg.LOCAL,
			1130, 20, 1, false, false, 0, "gravel"),
		datastructure.NewRoadSegment("dc", "d", "c", "Mill Lane", pkg.LOCAL,
			1130, 20, 1, false, false, 0, "gravel"),
	}
	for _, segment := range segments {
		require.NoError(t, store.AddRoadSegment(segment))
	}
	return store
}

type testEnv struct {
	store    *storage.InMemoryGraphStore
	registry *incident.Registry
	engine   *RoutingEngine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := buildTestStore(t)

	aggregator := traffic.NewAggregator(func(segmentId string) float64 {
		segment, ok := store.FindSegment(segmentId)
		if !ok {
			return pkg.DEFAULT_FREE_FLOW_SPEED_KMH
		}
		return storage.FreeFlowSpeed(segment)
	}, pkg.TRAFFIC_CONDITION_TTL_SECONDS*time.Second, zap.NewNop())

	index := spatialindex.NewSegmentIndex()
	store.ForSegments(func(segment *datastructure.RoadSegment) {
		from, to, ok := store.SegmentCoordinates(segment.GetId())
		if ok {
			index.Insert(segment.GetId(), from, to)
		}
	})

	registry := incident.NewRegistry(func(segmentId string) (geo.Coordinate, bool) {
		from, to, ok := store.SegmentCoordinates(segmentId)
		if !ok {
			return geo.Coordinate{}, false
		}
		midLat, midLon := geo.MidPoint(from.Lat, from.Lon, to.Lat, to.Lon)
		return geo.NewCoordinate(midLat, midLon), true
	}, index, zap.NewNop())
	registry.SetClock(func() time.Time { return offPeakWednesday })

	costFunction := costfunction.NewDynamicCostFunction(aggregator, registry)
	costFunction.SetClock(func() time.Time { return offPeakWednesday })

	return &testEnv{
		store:    store,
		registry: registry,
		engine:   NewRoutingEngine(store, aggregator, costFunction, zap.NewNop()),
	}
}

func TestFastestPrefersHighway(t *testing.T) {
	env := newTestEnv(t)

	route, err := env.engine.CalculateRoute(context.Background(), "a", "c",
		costfunction.NewCriteria(pkg.FASTEST))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, route.NodeIds)
	assert.Equal(t, []string{"direct"}, route.EdgeIds)
	assert.InDelta(t, 2300.0, route.TotalDistance, 1e-9)
	// 2300m at 100 km/h with the highway class factor
	assert.InDelta(t, 66.24, route.TotalTravelTime, 0.01)
	assert.Equal(t, 1, route.TollRoads)
	assert.NotEmpty(t, route.Polyline)
	assert.True(t, route.IsValidAt(time.Now()))
}

func TestShortestPrefersFewestMeters(t *testing.T) {
	env := newTestEnv(t)

	route, err := env.engine.CalculateRoute(context.Background(), "a", "c",
		costfunction.NewCriteria(pkg.SHORTEST))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "d", "c"}, route.NodeIds)
	assert.InDelta(t, 2260.0, route.TotalDistance, 1e-9)
}

func TestAvoidTollsShiftsRoute(t *testing.T) {
	env := newTestEnv(t)

	criteria := costfunction.NewCriteria(pkg.FASTEST)
	criteria.AvoidTolls = true

	route, err := env.engine.CalculateRoute(context.Background(), "a", "c", criteria)
	require.NoError(t, err)

	// tolled direct highway is penalized tenfold, the arterial detour wins
	assert.Equal(t, []string{"a", "b", "c"}, route.NodeIds)
	assert.Equal(t, 0, route.TollRoads)
}

func TestRoadClosureShiftsRoute(t *testing.T) {
	env := newTestEnv(t)

	env.registry.Add(datastructure.NewIncident("closure", pkg.ROAD_CLOSURE, pkg.CRITICAL,
		0, 0.01, 300, "bridge collapsed", offPeakWednesday.Add(-time.Minute), offPeakWednesday.Add(time.Hour)))

	route, err := env.engine.CalculateRoute(context.Background(), "a", "c",
		costfunction.NewCriteria(pkg.FASTEST))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, route.NodeIds)
}

func TestExpiredIncidentDoesNotAffectRoute(t *testing.T) {
	env := newTestEnv(t)

	env.registry.Add(datastructure.NewIncident("old", pkg.ROAD_CLOSURE, pkg.CRITICAL,
		0, 0.01, 300, "cleared", offPeakWednesday.Add(-2*time.Hour), offPeakWednesday.Add(-time.Hour)))

	route, err := env.engine.CalculateRoute(context.Background(), "a", "c",
		costfunction.NewCriteria(pkg.FASTEST))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, route.NodeIds)
}

func TestNoRouteToIsolatedNode(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.CalculateRoute(context.Background(), "a", "isolated",
		costfunction.NewCriteria(pkg.FASTEST))
	require.Error(t, err)
	assert.Equal(t, util.ErrNoRouteFound, util.GetCode(err))
}

func TestUnknownEndpoint(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.CalculateRoute(context.Background(), "a", "ghost",
		costfunction.NewCriteria(pkg.FASTEST))
	require.Error(t, err)
	assert.Equal(t, util.ErrInvalidEndpoint, util.GetCode(err))
}

func TestInvalidCriteriaRejectedBeforeSearch(t *testing.T) {
	env := newTestEnv(t)

	criteria := costfunction.NewCriteria(pkg.FASTEST)
	criteria.TimeWeight = 0.9

	_, err := env.engine.CalculateRoute(context.Background(), "a", "c", criteria)
	require.Error(t, err)
	assert.Equal(t, util.ErrInvalidCriteria, util.GetCode(err))
}

func TestHardConstraints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("max distance exceeded", func(t *testing.T) {
		criteria := costfunction.NewCriteria(pkg.FASTEST)
		criteria.MaxDistance = 2000

		_, err := env.engine.CalculateRoute(context.Background(), "a", "c", criteria)
		require.Error(t, err)
		assert.Equal(t, util.ErrNoRouteFound, util.GetCode(err))
	})

	t.Run("max travel time respected", func(t *testing.T) {
		criteria := costfunction.NewCriteria(pkg.FASTEST)
		criteria.MaxTravelTime = 100

		route, err := env.engine.CalculateRoute(context.Background(), "a", "c", criteria)
		require.NoError(t, err)
		assert.Less(t, route.TotalTravelTime, 100.0)
	})

	t.Run("max cost exceeded", func(t *testing.T) {
		criteria := costfunction.NewCriteria(pkg.FASTEST)
		criteria.MaxCost = 1.0 // direct highway carries a 5.0 toll

		_, err := env.engine.CalculateRoute(context.Background(), "a", "c", criteria)
		require.Error(t, err)
		assert.Equal(t, util.ErrNoRouteFound, util.GetCode(err))
	})
}

func TestRecalculateReturnsFreshRoute(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.engine.CalculateRoute(context.Background(), "a", "c",
		costfunction.NewCriteria(pkg.FASTEST))
	require.NoError(t, err)

	second, err := env.engine.Recalculate(context.Background(), first.RouteId, "b", "c",
		costfunction.NewCriteria(pkg.FASTEST))
	require.NoError(t, err)

	assert.NotEqual(t, first.RouteId, second.RouteId)
	assert.Equal(t, []string{"b", "c"}, second.NodeIds)
}

func TestCalculateAlternatives(t *testing.T) {
	env := newTestEnv(t)

	routes, err := env.engine.CalculateAlternatives(context.Background(), "a", "c",
		costfunction.NewCriteria(pkg.FASTEST), 3)
	require.NoError(t, err)

	// the primary comes first, then only materially different candidates
	require.NotEmpty(t, routes)
	assert.Equal(t, []string{"a", "c"}, routes[0].NodeIds)
	assert.LessOrEqual(t, len(routes), 3)

	for i, route := range routes {
		for j := i + 1; j < len(routes); j++ {
			other := routes[j]
			distinct := route.TotalDistance-other.TotalDistance >= pkg.ALTERNATIVE_MIN_DISTANCE_DIFF_METERS ||
				other.TotalDistance-route.TotalDistance >= pkg.ALTERNATIVE_MIN_DISTANCE_DIFF_METERS ||
				route.TotalTravelTime-other.TotalTravelTime >= pkg.ALTERNATIVE_MIN_TIME_DIFF_SECONDS ||
				other.TotalTravelTime-route.TotalTravelTime >= pkg.ALTERNATIVE_MIN_TIME_DIFF_SECONDS
			assert.True(t, distinct, "routes %d and %d are duplicates", i, j)
		}
	}
}

func TestCalculateAlternativesHonorsMaxCount(t *testing.T) {
	env := newTestEnv(t)

	routes, err := env.engine.CalculateAlternatives(context.Background(), "a", "c",
		costfunction.NewCriteria(pkg.FASTEST), 1)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, []string{"a", "c"}, routes[0].NodeIds)
}

func TestIsDuplicateRoute(t *testing.T) {
	base := datastructure.NewRoute([]string{"a", "c"}, []string{"direct"}, pkg.FASTEST)
	base.TotalDistance = 2300
	base.TotalTravelTime = 66

	near := datastructure.NewRoute([]string{"a", "c"}, []string{"direct"}, pkg.SHORTEST)
	near.TotalDistance = 2350 // within 100m
	near.TotalTravelTime = 80 // within 30s

	farByTime := datastructure.NewRoute([]string{"a", "d", "c"}, []string{"ad", "dc"}, pkg.SHORTEST)
	farByTime.TotalDistance = 2260 // within 100m of base
	farByTime.TotalTravelTime = 500

	assert.True(t, isDuplicateRoute(near, []*datastructure.Route{base}))
	assert.False(t, isDuplicateRoute(farByTime, []*datastructure.Route{base}))
}
