package incident

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/geo"
	"github.com/dynaroute/dynaroute/pkg/spatialindex"
	"go.uber.org/zap"
)

const numRegistryShards = 16

type registryShard struct {
	mu        sync.RWMutex
	incidents map[string]*datastructure.Incident
}

// Registry tracks active time-bounded incidents. Expired incidents are
// removed by a periodic sweep, but every read applies the is-active check
// itself so a reader between sweeps never observes an expired incident.
type Registry struct {
	shards [numRegistryShards]*registryShard

	// segmentRefPoint resolves the reference point of a segment, the
	// midpoint of its endpoints, for affect checks
	segmentRefPoint func(segmentId string) (geo.Coordinate, bool)
	segmentIndex    *spatialindex.SegmentIndex

	now func() time.Time
	log *zap.Logger
}

func NewRegistry(segmentRefPoint func(segmentId string) (geo.Coordinate, bool),
	segmentIndex *spatialindex.SegmentIndex, log *zap.Logger) *Registry {
	reg := &Registry{
		segmentRefPoint: segmentRefPoint,
		segmentIndex:    segmentIndex,
		now:             time.Now,
		log:             log,
	}
	for i := range reg.shards {
		reg.shards[i] = &registryShard{incidents: make(map[string]*datastructure.Incident)}
	}
	return reg
}

// SetClock overrides the time source, test hook only.
func (reg *Registry) SetClock(now func() time.Time) {
	reg.now = now
}

func (reg *Registry) shard(id string) *registryShard {
	h := fnv.New32a()
	h.Write([]byte(id))
	return reg.shards[h.Sum32()%numRegistryShards]
}

func (reg *Registry) Add(inc *datastructure.Incident) {
	shard := reg.shard(inc.GetId())
	shard.mu.Lock()
	shard.incidents[inc.GetId()] = inc
	shard.mu.Unlock()

	reg.log.Info("incident registered",
		zap.String("id", inc.GetId()),
		zap.String("description", inc.GetDescription()))
}

func (reg *Registry) Remove(id string) {
	shard := reg.shard(id)
	shard.mu.Lock()
	delete(shard.incidents, id)
	shard.mu.Unlock()
}

func (reg *Registry) forActive(fn func(inc *datastructure.Incident)) {
	now := reg.now()
	for _, shard := range reg.shards {
		shard.mu.RLock()
		for _, inc := range shard.incidents {
			if inc.IsActiveAt(now) {
				fn(inc)
			}
		}
		shard.mu.RUnlock()
	}
}

// ActiveIncidentsNear returns every active incident within radius meters of
// (lat, lon).
func (reg *Registry) ActiveIncidentsNear(lat, lon, radius float64) []*datastructure.Incident {
	result := make([]*datastructure.Incident, 0)
	reg.forActive(func(inc *datastructure.Incident) {
		if geo.HaversineDistanceMeters(inc.GetLat(), inc.GetLon(), lat, lon) <= radius {
			result = append(result, inc)
		}
	})
	return result
}

// Affecting returns the active incidents whose affect radius covers the
// segment's reference point.
func (reg *Registry) Affecting(segmentId string) []*datastructure.Incident {
	refPoint, ok := reg.segmentRefPoint(segmentId)
	if !ok {
		return nil
	}

	result := make([]*datastructure.Incident, 0)
	reg.forActive(func(inc *datastructure.Incident) {
		if inc.AffectsLocation(refPoint.GetLat(), refPoint.GetLon()) {
			result = append(result, inc)
		}
	})
	return result
}

// AffectedSegments resolves which indexed segments fall inside an incident's
// affect radius.
func (reg *Registry) AffectedSegments(inc *datastructure.Incident) []string {
	if reg.segmentIndex == nil {
		return nil
	}
	entries := reg.segmentIndex.SearchWithinRadius(inc.GetLat(), inc.GetLon(), inc.GetRadius())
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.GetSegmentId())
	}
	return ids
}

// Multiplier is the product of severity factor times type factor over all
// incidents affecting the segment, 1.0 when none. Stacked hazards compound
// multiplicatively on purpose, even at the cost of being overly pessimistic.
func (reg *Registry) Multiplier(segmentId string) float64 {
	multiplier := 1.0
	for _, inc := range reg.Affecting(segmentId) {
		multiplier *= inc.ImpactMultiplier()
	}
	return multiplier
}

// Run sweeps expired incidents on a fixed interval until ctx is canceled.
func (reg *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			reg.log.Info("incident sweep stopped")
			return
		case <-ticker.C:
			reg.Sweep()
		}
	}
}

// Sweep removes every incident whose end time has passed.
func (reg *Registry) Sweep() {
	now := reg.now()
	removed := 0
	for _, shard := range reg.shards {
		shard.mu.Lock()
		for id, inc := range shard.incidents {
			if inc.GetEndTime().Before(now) {
				delete(shard.incidents, id)
				removed++
			}
		}
		shard.mu.Unlock()
	}
	if removed > 0 {
		reg.log.Debug("swept expired incidents", zap.Int("removed", removed))
	}
}
