package routing

import (
	"context"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/costfunction"
	da "github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/util"
)

// vertexInfo is one record of the visited arena: the best known cost of a
// node and a parent back-reference by id. Path reconstruction walks parent
// ids from the destination back to the origin, no cyclic object graph is
// ever built.
type vertexInfo struct {
	gCost      float64
	parentNode string
	parentEdge string
}

// AStarSearch is a single best-first search over one immutable network
// snapshot, ordered by f = g + h. Each request owns its own search state, so
// concurrent requests never share anything mutable.
type AStarSearch struct {
	network      *da.RoadNetwork
	costFunction costfunction.CostFunction

	forwardInfo map[string]vertexInfo
	openEntries map[string]*da.PriorityQueueNode[da.SearchKey]
	pq          *da.MinHeap[da.SearchKey]

	numSettledNodes int
}

func NewAStarSearch(network *da.RoadNetwork, costFunction costfunction.CostFunction) *AStarSearch {
	return &AStarSearch{
		network:      network,
		costFunction: costFunction,
		forwardInfo:  make(map[string]vertexInfo),
		openEntries:  make(map[string]*da.PriorityQueueNode[da.SearchKey]),
		pq:           da.NewFourAryHeap[da.SearchKey](),
	}
}

// ShortestPath runs A* from origin to destination under the given criteria.
// The ordered node ids and the connecting edge ids are returned together with
// the accumulated objective cost. found is false when the open set empties
// without reaching the destination, which is a normal negative outcome.
func (s *AStarSearch) ShortestPath(ctx context.Context, originId, destinationId string,
	criteria *costfunction.Criteria) (nodeIds []string, edgeIds []string, totalCost float64, found bool, err error) {
	origin, ok := s.network.GetNode(originId)
	if !ok {
		return nil, nil, 0, false, util.WrapErrorf(nil, util.ErrInvalidEndpoint,
			"origin node %s not in snapshot", originId)
	}
	destination, ok := s.network.GetNode(destinationId)
	if !ok {
		return nil, nil, 0, false, util.WrapErrorf(nil, util.ErrInvalidEndpoint,
			"destination node %s not in snapshot", destinationId)
	}

	s.forwardInfo[originId] = vertexInfo{gCost: 0}

	h := s.costFunction.Heuristic(origin.GetLat(), origin.GetLon(),
		destination.GetLat(), destination.GetLon(), criteria)
	originEntry := da.NewPriorityQueueNode(h, da.NewSearchKey(originId))
	s.pq.Insert(originEntry)
	s.openEntries[originId] = originEntry

	for !s.pq.IsEmpty() {
		entry, _ := s.pq.ExtractMin()
		uId := entry.GetItem().GetNode()
		delete(s.openEntries, uId)
		s.numSettledNodes++

		if uId == destinationId {
			nodeIds, edgeIds = s.reconstructPath(originId, destinationId)
			return nodeIds, edgeIds, s.forwardInfo[destinationId].gCost, true, nil
		}

		s.relaxOutEdges(ctx, uId, destination, criteria)
	}

	// open set exhausted without settling the destination
	return nil, nil, 0, false, nil
}

func (s *AStarSearch) relaxOutEdges(ctx context.Context, uId string,
	destination *da.Intersection, criteria *costfunction.Criteria) {
	uInfo := s.forwardInfo[uId]

	s.network.ForOutEdgesOf(uId, func(segment *da.RoadSegment) {
		vId := segment.GetToIntersection()
		if vId == uId {
			return
		}

		head, ok := s.network.GetNode(vId)
		if !ok {
			return
		}

		edgeWeight := s.costFunction.Weight(ctx, segment, head, criteria)
		tentativeG := uInfo.gCost + edgeWeight
		if tentativeG >= pkg.INF_WEIGHT {
			return
		}

		vInfo, visited := s.forwardInfo[vId]
		if visited && tentativeG >= vInfo.gCost {
			// no improvement, do nothing
			return
		}

		s.forwardInfo[vId] = vertexInfo{
			gCost:      tentativeG,
			parentNode: uId,
			parentEdge: segment.GetId(),
		}

		priority := tentativeG + s.costFunction.Heuristic(head.GetLat(), head.GetLon(),
			destination.GetLat(), destination.GetLon(), criteria)

		if open, inQueue := s.openEntries[vId]; inQueue {
			if err := s.pq.DecreaseKey(open, priority); err != nil {
				// rank did not improve enough to move the entry
				return
			}
		} else {
			vEntry := da.NewPriorityQueueNode(priority, da.NewSearchKey(vId))
			s.pq.Insert(vEntry)
			s.openEntries[vId] = vEntry
		}
	})
}

// reconstructPath walks parent ids from the destination back to the origin.
func (s *AStarSearch) reconstructPath(originId, destinationId string) ([]string, []string) {
	nodeIds := make([]string, 0)
	edgeIds := make([]string, 0)

	curId := destinationId
	for curId != originId {
		info := s.forwardInfo[curId]
		nodeIds = append(nodeIds, curId)
		edgeIds = append(edgeIds, info.parentEdge)
		curId = info.parentNode
	}
	nodeIds = append(nodeIds, originId)

	return util.ReverseG(nodeIds), util.ReverseG(edgeIds)
}

func (s *AStarSearch) NumSettledNodes() int {
	return s.numSettledNodes
}
