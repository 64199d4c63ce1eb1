package costfunction

import (
	"context"
	"math"
	"time"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
)

// TrafficProvider supplies the fresh traffic condition of a segment. Stale
// conditions are refreshed behind it, callers always get a usable estimate.
type TrafficProvider interface {
	Condition(ctx context.Context, segmentId string) *datastructure.TrafficCondition
}

// IncidentProvider supplies the compound incident multiplier of a segment,
// 1.0 when no incident affects it.
type IncidentProvider interface {
	Multiplier(segmentId string) float64
}

// CostFunction evaluates the traversal cost of a segment under a set of
// criteria, plus the matching destination heuristic. Implementations must
// return non-negative weights, A*'s optimality guarantee depends on it.
type CostFunction interface {
	Weight(ctx context.Context, segment *datastructure.RoadSegment,
		head *datastructure.Intersection, criteria *Criteria) float64
	Heuristic(fromLat, fromLon, toLat, toLon float64, criteria *Criteria) float64
	TravelTime(ctx context.Context, segment *datastructure.RoadSegment,
		head *datastructure.Intersection) float64
	MonetaryCost(segment *datastructure.RoadSegment) float64
}

// DynamicCostFunction fuses static segment attributes with live traffic,
// incidents, time-of-day and weather into one traversal cost per objective.
type DynamicCostFunction struct {
	traffic   TrafficProvider
	incidents IncidentProvider
	now       func() time.Time
}

func NewDynamicCostFunction(traffic TrafficProvider, incidents IncidentProvider) *DynamicCostFunction {
	return &DynamicCostFunction{
		traffic:   traffic,
		incidents: incidents,
		now:       time.Now,
	}
}

// SetClock overrides the time source, test hook only.
func (cf *DynamicCostFunction) SetClock(now func() time.Time) {
	cf.now = now
}

// TravelTime is the dynamically adjusted traversal time of a segment in
// seconds: length over current speed, scaled by the congestion, incident,
// time-of-day, weather and road-class multipliers, plus a fixed penalty when
// the segment terminates at a signaled arterial or collector intersection.
func (cf *DynamicCostFunction) TravelTime(ctx context.Context, segment *datastructure.RoadSegment,
	head *datastructure.Intersection) float64 {
	condition := cf.traffic.Condition(ctx, segment.GetId())

	speed := condition.CurrentSpeed
	if speed <= 0 {
		speed = segment.GetBaseSpeedLimit()
	}
	baseTime := segment.GetLength() / (speed / 3.6) // km/h -> m/s

	congestionMultiplier := 1.0 + condition.CongestionLevel*pkg.CONGESTION_WEIGHT_FACTOR
	incidentMultiplier := cf.incidents.Multiplier(segment.GetId())
	timeMultiplier := cf.timeOfDayMultiplier()
	weatherMultiplier := weatherMultiplier(condition)
	roadClassMultiplier := segment.GetRoadClass().RoadClassMultiplier()

	travelTime := baseTime * congestionMultiplier * incidentMultiplier *
		timeMultiplier * weatherMultiplier * roadClassMultiplier

	if signaledJunction(segment, head) {
		travelTime += pkg.TRAFFIC_LIGHT_PENALTY_SECONDS
	}

	return travelTime
}

// Weight dispatches on the objective. Every objective except SHORTEST starts
// from the dynamic travel time; SHORTEST replaces the formula with raw
// distance. Soft user constraints multiply the result afterwards, they
// discourage but never exclude.
func (cf *DynamicCostFunction) Weight(ctx context.Context, segment *datastructure.RoadSegment,
	head *datastructure.Intersection, criteria *Criteria) float64 {
	var weight float64

	switch criteria.Objective {
	case pkg.SHORTEST:
		weight = segment.GetLength()
	case pkg.ECONOMICAL:
		travelTime := cf.TravelTime(ctx, segment, head)
		weight = travelTime*0.7 + cf.MonetaryCost(segment)*0.3
	case pkg.ECO_FRIENDLY:
		travelTime := cf.TravelTime(ctx, segment, head)
		condition := cf.traffic.Condition(ctx, segment.GetId())
		gradePenalty := math.Abs(segment.GetGrade()) * 2.0
		congestionPenalty := condition.CongestionLevel * 10.0
		weight = travelTime + gradePenalty + congestionPenalty
	case pkg.SCENIC:
		travelTime := cf.TravelTime(ctx, segment, head)
		weight = travelTime
		if segment.GetRoadClass() == pkg.LOCAL {
			weight *= 0.7
		}
	case pkg.SAFEST:
		travelTime := cf.TravelTime(ctx, segment, head)
		if segment.GetRoadClass() == pkg.HIGHWAY {
			weight = travelTime * 0.8
		} else {
			weight = travelTime * 1.1
		}
	case pkg.COMFORTABLE:
		travelTime := cf.TravelTime(ctx, segment, head)
		condition := cf.traffic.Condition(ctx, segment.GetId())
		weight = travelTime + condition.CongestionLevel*5.0
	default: // FASTEST
		weight = cf.TravelTime(ctx, segment, head)
	}

	if criteria.AvoidTolls && segment.IsTollRoad() {
		weight *= pkg.AVOID_TOLLS_PENALTY_FACTOR
	}
	if criteria.AvoidHighways && segment.IsHighway() {
		weight *= pkg.AVOID_HIGHWAYS_PENALTY_FACTOR
	}
	if criteria.PreferScenic &&
		(segment.GetRoadClass() == pkg.LOCAL || segment.GetRoadClass() == pkg.COLLECTOR) {
		weight *= 0.9
	}

	return weight
}

// MonetaryCost is the toll plus fuel cost of traversing a segment, in
// abstract currency units.
func (cf *DynamicCostFunction) MonetaryCost(segment *datastructure.RoadSegment) float64 {
	cost := segment.GetLength() / 1000.0 * pkg.FUEL_COST_PER_KM
	if segment.IsTollRoad() {
		cost += pkg.TOLL_FLAT_FEE
	}
	return cost
}

// signaledJunction reports whether an edge terminating at this node pays the
// traffic-light penalty: only signaled arterial and collector junctions do.
func signaledJunction(segment *datastructure.RoadSegment, head *datastructure.Intersection) bool {
	if head == nil || !head.HasTrafficLight() {
		return false
	}
	return segment.GetRoadClass() == pkg.ARTERIAL || segment.GetRoadClass() == pkg.COLLECTOR
}

func (cf *DynamicCostFunction) timeOfDayMultiplier() float64 {
	now := cf.now()
	hour := now.Hour()
	weekday := now.Weekday()

	isWeekend := weekday == time.Saturday || weekday == time.Sunday
	isPeakHour := (hour >= 7 && hour < 9) || (hour >= 17 && hour < 19)

	if isPeakHour && !isWeekend {
		return pkg.PEAK_HOUR_MULTIPLIER
	}
	if isWeekend {
		return pkg.WEEKEND_MULTIPLIER
	}
	return 1.0
}

// weatherMultiplier scales 1.0 under clear conditions up to 1.5 under severe
// precipitation or low visibility.
func weatherMultiplier(condition *datastructure.TrafficCondition) float64 {
	return 1.0 + condition.WeatherImpact*(pkg.MAX_WEATHER_MULTIPLIER-1.0)
}
