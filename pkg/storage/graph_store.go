package storage

import (
	"sync"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/geo"
	"github.com/dynaroute/dynaroute/pkg/util"
)

// GraphStore is the external graph-storage collaborator. It only has to
// answer node lookups and bounding-box queries; persistence behind it is out
// of scope.
type GraphStore interface {
	FindNode(nodeId string) (*datastructure.Intersection, bool)
	NodesInBoundingBox(bb geo.BoundingBox) []*datastructure.Intersection
	OutgoingSegments(nodeId string) []*datastructure.RoadSegment
}

// LoadSubgraph returns the snapshot induced by the bounding box of origin and
// destination expanded by padding degrees: every node inside the box and
// every segment whose both endpoints are inside. The returned network is a
// read-only view, later traffic mutations never alter it.
func LoadSubgraph(store GraphStore, originId, destinationId string, padding float64) (*datastructure.RoadNetwork, error) {
	origin, ok := store.FindNode(originId)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrInvalidEndpoint, "origin node %s not found", originId)
	}
	destination, ok := store.FindNode(destinationId)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrInvalidEndpoint, "destination node %s not found", destinationId)
	}

	bb := geo.NewBoundingBox(origin.GetLat(), origin.GetLon(),
		destination.GetLat(), destination.GetLon(), padding)

	network := datastructure.NewRoadNetwork()
	nodes := store.NodesInBoundingBox(bb)
	for _, node := range nodes {
		network.AddNode(node)
	}

	for _, node := range nodes {
		for _, segment := range store.OutgoingSegments(node.GetId()) {
			// AddSegment drops segments whose head lies outside the box
			network.AddSegment(segment)
		}
	}

	return network, nil
}

// InMemoryGraphStore is the in-process GraphStore used by the server and the
// tests. Reads dominate writes, so a single RWMutex is enough here; the
// per-key sharding requirement applies to traffic and incident state, not to
// the static network.
type InMemoryGraphStore struct {
	mu          sync.RWMutex
	nodes       map[string]*datastructure.Intersection
	segments    map[string]*datastructure.RoadSegment
	outSegments map[string][]*datastructure.RoadSegment
}

func NewInMemoryGraphStore() *InMemoryGraphStore {
	return &InMemoryGraphStore{
		nodes:       make(map[string]*datastructure.Intersection),
		segments:    make(map[string]*datastructure.RoadSegment),
		outSegments: make(map[string][]*datastructure.RoadSegment),
	}
}

func (st *InMemoryGraphStore) AddIntersection(node *datastructure.Intersection) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.nodes[node.GetId()] = node
}

func (st *InMemoryGraphStore) AddRoadSegment(segment *datastructure.RoadSegment) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.nodes[segment.GetFromIntersection()]; !ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"segment %s references unknown intersection %s", segment.GetId(), segment.GetFromIntersection())
	}
	if _, ok := st.nodes[segment.GetToIntersection()]; !ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"segment %s references unknown intersection %s", segment.GetId(), segment.GetToIntersection())
	}
	st.segments[segment.GetId()] = segment
	st.outSegments[segment.GetFromIntersection()] = append(
		st.outSegments[segment.GetFromIntersection()], segment)
	return nil
}

func (st *InMemoryGraphStore) FindNode(nodeId string) (*datastructure.Intersection, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	node, ok := st.nodes[nodeId]
	return node, ok
}

func (st *InMemoryGraphStore) FindSegment(segmentId string) (*datastructure.RoadSegment, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	segment, ok := st.segments[segmentId]
	return segment, ok
}

func (st *InMemoryGraphStore) NodesInBoundingBox(bb geo.BoundingBox) []*datastructure.Intersection {
	st.mu.RLock()
	defer st.mu.RUnlock()
	result := make([]*datastructure.Intersection, 0)
	for _, node := range st.nodes {
		if bb.Contains(node.GetLat(), node.GetLon()) {
			result = append(result, node)
		}
	}
	return result
}

func (st *InMemoryGraphStore) OutgoingSegments(nodeId string) []*datastructure.RoadSegment {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.outSegments[nodeId]
}

func (st *InMemoryGraphStore) ForSegments(fn func(segment *datastructure.RoadSegment)) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, segment := range st.segments {
		fn(segment)
	}
}

func (st *InMemoryGraphStore) SegmentIds() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ids := make([]string, 0, len(st.segments))
	for id := range st.segments {
		ids = append(ids, id)
	}
	return ids
}

// SegmentCoordinates looks up the endpoint coordinates of a segment,
// used when building the segment spatial index.
func (st *InMemoryGraphStore) SegmentCoordinates(segmentId string) (from, to geo.Coordinate, ok bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	segment, found := st.segments[segmentId]
	if !found {
		return geo.Coordinate{}, geo.Coordinate{}, false
	}
	fromNode, okFrom := st.nodes[segment.GetFromIntersection()]
	toNode, okTo := st.nodes[segment.GetToIntersection()]
	if !okFrom || !okTo {
		return geo.Coordinate{}, geo.Coordinate{}, false
	}
	return geo.NewCoordinate(fromNode.GetLat(), fromNode.GetLon()),
		geo.NewCoordinate(toNode.GetLat(), toNode.GetLon()), true
}

// FreeFlowSpeed is the typical free-flow speed for a segment, the fallback
// the traffic aggregator uses when no live source has data.
func FreeFlowSpeed(segment *datastructure.RoadSegment) float64 {
	if segment == nil || segment.GetBaseSpeedLimit() <= 0 {
		return pkg.DEFAULT_FREE_FLOW_SPEED_KMH
	}
	return segment.GetBaseSpeedLimit()
}
