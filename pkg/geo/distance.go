package geo

import (
	"math"

	"github.com/dynaroute/dynaroute/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// HaversineDistanceMeters. great-circle distance in meters, the unit every
// route cost is expressed in.
func HaversineDistanceMeters(latOne, longOne, latTwo, longTwo float64) float64 {
	return CalculateHaversineDistance(latOne, longOne, latTwo, longTwo) * 1000.0
}

// MidPoint returns the midpoint of the great-circle arc between two points.
func MidPoint(latOne, longOne, latTwo, longTwo float64) (float64, float64) {
	latOneRad := util.DegreeToRadians(latOne)
	latTwoRad := util.DegreeToRadians(latTwo)
	deltaLon := util.DegreeToRadians(longTwo - longOne)

	bx := math.Cos(latTwoRad) * math.Cos(deltaLon)
	by := math.Cos(latTwoRad) * math.Sin(deltaLon)

	midLat := math.Atan2(math.Sin(latOneRad)+math.Sin(latTwoRad),
		math.Sqrt((math.Cos(latOneRad)+bx)*(math.Cos(latOneRad)+bx)+by*by))
	midLon := util.DegreeToRadians(longOne) + math.Atan2(by, math.Cos(latOneRad)+bx)

	return util.RadiansToDegree(midLat), util.RadiansToDegree(midLon)
}

// GetDestinationPoint returns the destination point given the starting point, bearing and distance
// dist in km
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {
	dr := dist / earthRadiusKM

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2))
}

func normalizeLongitude(lon float64) float64 {
	for lon > 180.0 {
		lon -= 360.0
	}
	for lon < -180.0 {
		lon += 360.0
	}
	return lon
}

type BoundingBox struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

// NewBoundingBox builds the min/max lat/lon box of two endpoints expanded by
// padding degrees on every side.
func NewBoundingBox(latOne, lonOne, latTwo, lonTwo, padding float64) BoundingBox {
	return BoundingBox{
		MinLat: math.Min(latOne, latTwo) - padding,
		MinLon: math.Min(lonOne, lonTwo) - padding,
		MaxLat: math.Max(latOne, latTwo) + padding,
		MaxLon: math.Max(lonOne, lonTwo) + padding,
	}
}

func (bb BoundingBox) Contains(lat, lon float64) bool {
	return lat >= bb.MinLat && lat <= bb.MaxLat &&
		lon >= bb.MinLon && lon <= bb.MaxLon
}
