package costfunction

import (
	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/geo"
)

// Heuristic estimates the remaining cost to the destination in the
// objective's units. FASTEST and SHORTEST are admissible (straight line at
// the maximum reasonable speed never overstates the true remaining cost);
// the other objectives reuse the distance proxy, which is best effort only.
func (cf *DynamicCostFunction) Heuristic(fromLat, fromLon, toLat, toLon float64, criteria *Criteria) float64 {
	distanceMeters := geo.HaversineDistanceMeters(fromLat, fromLon, toLat, toLon)

	switch criteria.Objective {
	case pkg.SHORTEST:
		return distanceMeters
	case pkg.ECONOMICAL:
		return distanceMeters / 1000.0 * pkg.ECONOMICAL_HEURISTIC_PER_KM
	default:
		// straight-line time at the maximum reasonable speed
		return distanceMeters / (pkg.MAX_REASONABLE_SPEED_KMH / 3.6)
	}
}
