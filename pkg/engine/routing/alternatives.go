package routing

import (
	"context"
	"math"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/concurrent"
	"github.com/dynaroute/dynaroute/pkg/costfunction"
	da "github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/storage"
	"github.com/dynaroute/dynaroute/pkg/util"
	"go.uber.org/zap"
)

// alternativeObjectives are tried, in order, after the primary objective.
var alternativeObjectives = []pkg.Objective{
	pkg.FASTEST, pkg.SHORTEST, pkg.ECONOMICAL, pkg.ECO_FRIENDLY,
}

type alternativeResult struct {
	objective pkg.Objective
	route     *da.Route
}

// CalculateAlternatives returns the primary route first, then materially
// distinct candidates found by re-running the search under the remaining
// objectives. Candidates are dropped as duplicates only when both the
// distance and the time delta against an accepted route are below threshold:
// near-identical routes that differ meaningfully in either dimension are
// still surfaced.
func (e *RoutingEngine) CalculateAlternatives(ctx context.Context, originId, destinationId string,
	criteria *costfunction.Criteria, maxCount int) ([]*da.Route, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	network, err := storage.LoadSubgraph(e.store, originId, destinationId, pkg.BOUNDING_BOX_PADDING_DEGREE)
	if err != nil {
		return nil, err
	}

	alternatives := make([]*da.Route, 0, maxCount)

	primary, err := e.searchOnSnapshot(ctx, network, originId, destinationId, criteria)
	if err != nil {
		return nil, err
	}
	alternatives = append(alternatives, primary)

	candidates := make([]pkg.Objective, 0, len(alternativeObjectives))
	for _, objective := range alternativeObjectives {
		if objective == criteria.Objective {
			continue
		}
		candidates = append(candidates, objective)
	}
	if len(candidates) == 0 || len(alternatives) >= maxCount {
		return alternatives, nil
	}

	// fan the remaining objectives out, collect, then filter in objective
	// order so results stay deterministic
	pool := concurrent.NewWorkerPool[pkg.Objective, alternativeResult](
		util.MinInt(len(candidates), 4), len(candidates))
	pool.Start(func(objective pkg.Objective) alternativeResult {
		altCriteria := *criteria
		altCriteria.Objective = objective
		route, altErr := e.searchOnSnapshot(ctx, network, originId, destinationId, &altCriteria)
		if altErr != nil {
			e.log.Debug("alternative objective failed",
				zap.String("objective", objective.String()), zap.Error(altErr))
			return alternativeResult{objective: objective}
		}
		return alternativeResult{objective: objective, route: route}
	})
	for _, objective := range candidates {
		pool.AddJob(objective)
	}
	pool.Close()
	pool.Wait()

	byObjective := make(map[pkg.Objective]*da.Route, len(candidates))
	for result := range pool.CollectResults() {
		if result.route != nil {
			byObjective[result.objective] = result.route
		}
	}

	for _, objective := range candidates {
		if len(alternatives) >= maxCount {
			break
		}
		route, ok := byObjective[objective]
		if !ok || isDuplicateRoute(route, alternatives) {
			continue
		}
		alternatives = append(alternatives, route)
	}

	e.log.Info("alternative routes calculated",
		zap.Int("requested", maxCount),
		zap.Int("returned", len(alternatives)))

	return alternatives, nil
}

// isDuplicateRoute rejects a candidate only when both the distance and the
// travel-time difference against some accepted route are below threshold.
func isDuplicateRoute(candidate *da.Route, accepted []*da.Route) bool {
	for _, existing := range accepted {
		distanceDiff := math.Abs(existing.TotalDistance - candidate.TotalDistance)
		timeDiff := math.Abs(existing.TotalTravelTime - candidate.TotalTravelTime)
		if distanceDiff < pkg.ALTERNATIVE_MIN_DISTANCE_DIFF_METERS &&
			timeDiff < pkg.ALTERNATIVE_MIN_TIME_DIFF_SECONDS {
			return true
		}
	}
	return false
}
