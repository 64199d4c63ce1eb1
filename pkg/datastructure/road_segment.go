package datastructure

import (
	"github.com/dynaroute/dynaroute/pkg"
)

// RoadSegment is a directed edge fromIntersection -> toIntersection with
// static attributes. A segment never exists detached from two valid
// endpoints, ownership is exclusive to the network.
type RoadSegment struct {
	id               string
	fromIntersection string
	toIntersection   string
	name             string
	roadClass        pkg.RoadClass
	length           float64 // in meters
	baseSpeedLimit   float64 // in km/h
	lanes            int
	oneWay           bool
	tollRoad         bool
	grade            float64 // road grade percentage
	surfaceType      string
}

func NewRoadSegment(id, from, to, name string, roadClass pkg.RoadClass,
	length, baseSpeedLimit float64, lanes int, oneWay, tollRoad bool,
	grade float64, surfaceType string) *RoadSegment {
	return &RoadSegment{
		id:               id,
		fromIntersection: from,
		toIntersection:   to,
		name:             name,
		roadClass:        roadClass,
		length:           length,
		baseSpeedLimit:   baseSpeedLimit,
		lanes:            lanes,
		oneWay:           oneWay,
		tollRoad:         tollRoad,
		grade:            grade,
		surfaceType:      surfaceType,
	}
}

func (rs *RoadSegment) GetId() string {
	return rs.id
}

func (rs *RoadSegment) GetFromIntersection() string {
	return rs.fromIntersection
}

func (rs *RoadSegment) GetToIntersection() string {
	return rs.toIntersection
}

func (rs *RoadSegment) GetName() string {
	return rs.name
}

func (rs *RoadSegment) GetRoadClass() pkg.RoadClass {
	return rs.roadClass
}

func (rs *RoadSegment) GetLength() float64 {
	return rs.length
}

func (rs *RoadSegment) GetBaseSpeedLimit() float64 {
	return rs.baseSpeedLimit
}

func (rs *RoadSegment) GetLanes() int {
	return rs.lanes
}

func (rs *RoadSegment) IsOneWay() bool {
	return rs.oneWay
}

func (rs *RoadSegment) IsTollRoad() bool {
	return rs.tollRoad
}

func (rs *RoadSegment) GetGrade() float64 {
	return rs.grade
}

func (rs *RoadSegment) GetSurfaceType() string {
	return rs.surfaceType
}

func (rs *RoadSegment) IsHighway() bool {
	return rs.roadClass == pkg.HIGHWAY
}
