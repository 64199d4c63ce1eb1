package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// one degree of longitude at the equator is roughly 111.2 km
	km := CalculateHaversineDistance(0, 0, 0, 1)
	assert.InDelta(t, 111.2, km, 0.3)

	assert.InDelta(t, km*1000.0, HaversineDistanceMeters(0, 0, 0, 1), 1e-6)
	assert.InDelta(t, 0.0, CalculateHaversineDistance(10, 10, 10, 10), 1e-9)
}

func TestMidPoint(t *testing.T) {
	lat, lon := MidPoint(0, 0, 0, 0.02)
	assert.InDelta(t, 0.0, lat, 1e-9)
	assert.InDelta(t, 0.01, lon, 1e-6)
}

func TestGetDestinationPointRoundTrip(t *testing.T) {
	lat, lon := GetDestinationPoint(0, 0, 90, 10.0) // 10 km due east
	assert.InDelta(t, 10.0, CalculateHaversineDistance(0, 0, lat, lon), 0.01)
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox(0, 0, 0.01, 0.02, 0.1)

	assert.True(t, bb.Contains(0.005, 0.01))
	assert.True(t, bb.Contains(-0.05, -0.05)) // inside the padding
	assert.False(t, bb.Contains(0.5, 0.5))
}
