package datastructure

// RoadNetwork is an immutable snapshot of the subgraph induced by a bounding
// box. Traffic and incident state mutate independently, the snapshot only
// fixes topology; the weight function is evaluated lazily against it during
// search.
type RoadNetwork struct {
	nodes    map[string]*Intersection
	segments map[string]*RoadSegment
	outEdges map[string][]string // node id -> outgoing segment ids
}

func NewRoadNetwork() *RoadNetwork {
	return &RoadNetwork{
		nodes:    make(map[string]*Intersection),
		segments: make(map[string]*RoadSegment),
		outEdges: make(map[string][]string),
	}
}

func (rn *RoadNetwork) AddNode(node *Intersection) {
	rn.nodes[node.GetId()] = node
}

// AddSegment inserts a directed edge. Both endpoints must already be part of
// the snapshot, a segment never dangles.
func (rn *RoadNetwork) AddSegment(segment *RoadSegment) bool {
	if _, ok := rn.nodes[segment.GetFromIntersection()]; !ok {
		return false
	}
	if _, ok := rn.nodes[segment.GetToIntersection()]; !ok {
		return false
	}
	rn.segments[segment.GetId()] = segment
	rn.outEdges[segment.GetFromIntersection()] = append(
		rn.outEdges[segment.GetFromIntersection()], segment.GetId())
	return true
}

func (rn *RoadNetwork) GetNode(id string) (*Intersection, bool) {
	node, ok := rn.nodes[id]
	return node, ok
}

func (rn *RoadNetwork) GetSegment(id string) (*RoadSegment, bool) {
	segment, ok := rn.segments[id]
	return segment, ok
}

func (rn *RoadNetwork) NumberOfNodes() int {
	return len(rn.nodes)
}

func (rn *RoadNetwork) NumberOfSegments() int {
	return len(rn.segments)
}

// ForOutEdgesOf iterates over the outgoing segments of a node.
func (rn *RoadNetwork) ForOutEdgesOf(nodeId string, fn func(segment *RoadSegment)) {
	for _, segmentId := range rn.outEdges[nodeId] {
		fn(rn.segments[segmentId])
	}
}

func (rn *RoadNetwork) ForNodes(fn func(node *Intersection)) {
	for _, node := range rn.nodes {
		fn(node)
	}
}

func (rn *RoadNetwork) ForSegments(fn func(segment *RoadSegment)) {
	for _, segment := range rn.segments {
		fn(segment)
	}
}
