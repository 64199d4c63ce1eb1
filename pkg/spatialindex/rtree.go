package spatialindex

import (
	"math"

	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// SegmentIndex answers two spatial questions about road segments: which
// segments lie within a radius of a point (incident impact) and which segment
// is nearest to a raw position fix (snapping for recalculation).
type SegmentIndex struct {
	tr *rtree.RTreeG[SegmentEntry]
}

type SegmentEntry struct {
	segmentId string
	from      geo.Coordinate
	to        geo.Coordinate
}

func (se SegmentEntry) GetSegmentId() string {
	return se.segmentId
}

func (se SegmentEntry) GetFrom() geo.Coordinate {
	return se.from
}

func (se SegmentEntry) GetTo() geo.Coordinate {
	return se.to
}

func NewSegmentIndex() *SegmentIndex {
	var tr rtree.RTreeG[SegmentEntry]
	return &SegmentIndex{
		tr: &tr,
	}
}

// SegmentSource is the slice of the graph store the index builds itself from.
type SegmentSource interface {
	ForSegments(fn func(segment *datastructure.RoadSegment))
	SegmentCoordinates(segmentId string) (geo.Coordinate, geo.Coordinate, bool)
}

// Build indexes every segment of the source under the bounding box of its two
// endpoints. Segments with unresolvable endpoints are skipped.
func (si *SegmentIndex) Build(source SegmentSource, log *zap.Logger) int {
	count := 0
	source.ForSegments(func(segment *datastructure.RoadSegment) {
		from, to, ok := source.SegmentCoordinates(segment.GetId())
		if !ok {
			return
		}

		si.Insert(segment.GetId(), from, to)
		count++
	})

	log.Info("segment spatial index built", zap.Int("segments", count))
	return count
}

func (si *SegmentIndex) Insert(segmentId string, from, to geo.Coordinate) {
	minLat := math.Min(from.Lat, to.Lat)
	minLon := math.Min(from.Lon, to.Lon)
	maxLat := math.Max(from.Lat, to.Lat)
	maxLon := math.Max(from.Lon, to.Lon)

	si.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
		SegmentEntry{segmentId: segmentId, from: from, to: to})
}

// SearchWithinRadius returns all segments whose perpendicular distance from
// the query point (qLat, qLon) is within radius meters.
func (si *SegmentIndex) SearchWithinRadius(qLat, qLon, radius float64) []SegmentEntry {
	radiusKM := radius / 1000.0
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radiusKM*math.Sqrt2)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radiusKM*math.Sqrt2)

	query := geo.NewCoordinate(qLat, qLon)
	results := make([]SegmentEntry, 0, 10)
	si.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data SegmentEntry) bool {
			if geo.PointLinePerpendicularDistance(data.from, data.to, query) <= radius {
				results = append(results, data)
			}
			return true
		})
	return results
}

// Nearest returns the segment closest to (qLat, qLon), searching an expanding
// radius up to maxRadius meters.
func (si *SegmentIndex) Nearest(qLat, qLon, maxRadius float64) (SegmentEntry, bool) {
	query := geo.NewCoordinate(qLat, qLon)
	for radius := 200.0; radius <= maxRadius; radius *= 2 {
		candidates := si.SearchWithinRadius(qLat, qLon, radius)
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		bestDist := geo.PointLinePerpendicularDistance(best.from, best.to, query)
		for _, cand := range candidates[1:] {
			dist := geo.PointLinePerpendicularDistance(cand.from, cand.to, query)
			if dist < bestDist {
				best = cand
				bestDist = dist
			}
		}
		return best, true
	}
	return SegmentEntry{}, false
}
