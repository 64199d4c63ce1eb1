package traffic

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"go.uber.org/zap"
)

const numCacheShards = 32

// defaultVisibilityMeters is assumed when no source reports visibility.
const defaultVisibilityMeters = 10000.0

type cacheShard struct {
	mu         sync.RWMutex
	conditions map[string]*datastructure.TrafficCondition
}

// Aggregator fuses readings from every registered data source into one
// traffic-condition estimate per segment, weighted by source reliability, and
// caches the result with a TTL. Segments are independent units, so the cache
// is sharded instead of globally locked.
type Aggregator struct {
	shards [numCacheShards]*cacheShard

	sourceMu sync.RWMutex
	sources  []DataSource

	// freeFlowSpeed supplies the fallback speed for a segment when no
	// source has data
	freeFlowSpeed func(segmentId string) float64

	ttl time.Duration
	now func() time.Time
	log *zap.Logger
}

func NewAggregator(freeFlowSpeed func(segmentId string) float64, ttl time.Duration, log *zap.Logger) *Aggregator {
	agg := &Aggregator{
		freeFlowSpeed: freeFlowSpeed,
		ttl:           ttl,
		now:           time.Now,
		log:           log,
	}
	for i := range agg.shards {
		agg.shards[i] = &cacheShard{conditions: make(map[string]*datastructure.TrafficCondition)}
	}
	return agg
}

// SetClock overrides the time source, test hook only.
func (agg *Aggregator) SetClock(now func() time.Time) {
	agg.now = now
}

func (agg *Aggregator) RegisterSource(source DataSource) {
	agg.sourceMu.Lock()
	defer agg.sourceMu.Unlock()
	agg.sources = append(agg.sources, source)
}

func (agg *Aggregator) shard(segmentId string) *cacheShard {
	h := fnv.New32a()
	h.Write([]byte(segmentId))
	return agg.shards[h.Sum32()%numCacheShards]
}

// Condition returns the fresh traffic condition for a segment: the cached one
// when still within its TTL, otherwise a re-aggregated one. It never fails;
// "no data" degrades to the default free-flow condition.
func (agg *Aggregator) Condition(ctx context.Context, segmentId string) *datastructure.TrafficCondition {
	shard := agg.shard(segmentId)

	shard.mu.RLock()
	cached, ok := shard.conditions[segmentId]
	shard.mu.RUnlock()

	if ok && !cached.IsStale(agg.now(), agg.ttl) {
		return cached
	}

	return agg.Refresh(ctx, segmentId)
}

// Refresh queries every registered source and combines whatever came back,
// bypassing the cache. The aggregate is cached before returning.
func (agg *Aggregator) Refresh(ctx context.Context, segmentId string) *datastructure.TrafficCondition {
	agg.sourceMu.RLock()
	sources := make([]DataSource, len(agg.sources))
	copy(sources, agg.sources)
	agg.sourceMu.RUnlock()

	readings := make([]*Reading, 0, len(sources))
	reliabilities := make([]float64, 0, len(sources))
	for _, source := range sources {
		reading, err := source.FetchReading(ctx, segmentId)
		if err != nil {
			// a failing source degrades confidence, it never fails the caller
			agg.log.Warn("traffic source unavailable",
				zap.String("source", source.Name()),
				zap.String("segment", segmentId),
				zap.Error(err))
			continue
		}
		readings = append(readings, reading)
		reliabilities = append(reliabilities, source.Reliability())
	}

	condition := agg.combine(segmentId, readings, reliabilities)

	shard := agg.shard(segmentId)
	shard.mu.Lock()
	shard.conditions[segmentId] = condition
	shard.mu.Unlock()

	return condition
}

func (agg *Aggregator) combine(segmentId string, readings []*Reading, reliabilities []float64) *datastructure.TrafficCondition {
	now := agg.now()

	if len(readings) == 0 {
		return agg.defaultCondition(segmentId, now)
	}

	var totalWeight float64
	for _, rel := range reliabilities {
		totalWeight += rel
	}
	// every source may report zero reliability, weighting would divide by
	// zero and poison downstream edge weights with NaN
	if totalWeight <= 0 {
		return agg.defaultCondition(segmentId, now)
	}

	condition := &datastructure.TrafficCondition{
		SegmentId: segmentId,
		// the aggregate carries a fixed conservative confidence, distinct
		// from any single source's reliability
		Reliability: pkg.AGGREGATE_RELIABILITY,
		Timestamp:   now,
		ExpiresAt:   now.Add(agg.ttl),
	}
	for i, reading := range readings {
		w := reliabilities[i] / totalWeight
		condition.CurrentSpeed += reading.Speed * w
		condition.CongestionLevel += reading.Congestion * w
		condition.TrafficDensity += reading.Density * w
		condition.FlowRate += reading.FlowRate * w
		condition.Precipitation += reading.Precipitation * w
		condition.Visibility += reading.Visibility * w
	}
	condition.WeatherImpact = weatherImpact(condition.Precipitation, condition.Visibility)

	return condition
}

// defaultCondition is the free-flow fallback used when no usable reading
// exists for a segment.
func (agg *Aggregator) defaultCondition(segmentId string, now time.Time) *datastructure.TrafficCondition {
	return &datastructure.TrafficCondition{
		SegmentId:    segmentId,
		CurrentSpeed: agg.freeFlowSpeed(segmentId),
		Visibility:   defaultVisibilityMeters,
		Reliability:  pkg.DEFAULT_RELIABILITY,
		Timestamp:    now,
		ExpiresAt:    now.Add(agg.ttl),
	}
}

// weatherImpact maps precipitation and visibility observations onto the
// 0.0 (clear) .. 1.0 (severe) scale the weight function consumes.
func weatherImpact(precipitation, visibility float64) float64 {
	impact := 0.0

	// heavy rain is roughly 10 mm/hour
	if precipitation > 0 {
		impact += precipitation / 10.0
		if impact > 0.6 {
			impact = 0.6
		}
	}

	if visibility > 0 && visibility < 1000.0 {
		impact += (1000.0 - visibility) / 1000.0 * 0.4
	}

	if impact > 1.0 {
		impact = 1.0
	}
	return impact
}
