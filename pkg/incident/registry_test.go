package incident

import (
	"testing"
	"time"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/geo"
	"github.com/dynaroute/dynaroute/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)

// newTestRegistry indexes one segment s1 whose midpoint sits at (0, 0); its
// endpoints are roughly 550m to the west and east.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	index := spatialindex.NewSegmentIndex()
	index.Insert("s1", geo.NewCoordinate(0, -0.005), geo.NewCoordinate(0, 0.005))

	refPoint := func(segmentId string) (geo.Coordinate, bool) {
		if segmentId == "s1" {
			return geo.NewCoordinate(0, 0), true
		}
		return geo.Coordinate{}, false
	}

	reg := NewRegistry(refPoint, index, zap.NewNop())
	reg.SetClock(func() time.Time { return testNow })
	return reg
}

func activeIncident(id string, incidentType pkg.IncidentType, severity pkg.Severity,
	lat, lon, radius float64) *datastructure.Incident {
	return datastructure.NewIncident(id, incidentType, severity, lat, lon, radius,
		"test incident", testNow.Add(-10*time.Minute), testNow.Add(50*time.Minute))
}

func TestMultiplierCompoundsSeverityAndType(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Add(activeIncident("i1", pkg.ROAD_CLOSURE, pkg.CRITICAL, 0, 0, 500))

	// 3.0 severity x 5.0 type
	assert.InDelta(t, 15.0, reg.Multiplier("s1"), 1e-9)
}

func TestMultiplierStacksMultipleIncidents(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Add(activeIncident("i1", pkg.ACCIDENT, pkg.LOW, 0, 0, 500))     // 1.3 x 1.5
	reg.Add(activeIncident("i2", pkg.CONSTRUCTION, pkg.LOW, 0, 0, 500)) // 1.3 x 1.3

	assert.InDelta(t, 1.3*1.5*1.3*1.3, reg.Multiplier("s1"), 1e-9)
}

func TestMultiplierIgnoresDistantIncident(t *testing.T) {
	reg := newTestRegistry(t)
	// roughly 11km north of the segment midpoint, radius only 500m
	reg.Add(activeIncident("i1", pkg.ROAD_CLOSURE, pkg.CRITICAL, 0.1, 0, 500))

	assert.InDelta(t, 1.0, reg.Multiplier("s1"), 1e-9)
}

func TestExpiredIncidentNeverObserved(t *testing.T) {
	reg := newTestRegistry(t)
	expired := datastructure.NewIncident("i1", pkg.ACCIDENT, pkg.HIGH, 0, 0, 500,
		"cleared accident", testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))
	reg.Add(expired)

	// expired incidents are filtered at read time, even before any sweep
	assert.InDelta(t, 1.0, reg.Multiplier("s1"), 1e-9)
	assert.Empty(t, reg.ActiveIncidentsNear(0, 0, 1000))
}

func TestFutureIncidentNotYetActive(t *testing.T) {
	reg := newTestRegistry(t)
	planned := datastructure.NewIncident("i1", pkg.CONSTRUCTION, pkg.MEDIUM, 0, 0, 500,
		"planned roadwork", testNow.Add(time.Hour), testNow.Add(3*time.Hour))
	reg.Add(planned)

	assert.InDelta(t, 1.0, reg.Multiplier("s1"), 1e-9)
}

func TestSweepRemovesExpired(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Add(activeIncident("active", pkg.ACCIDENT, pkg.LOW, 0, 0, 500))
	reg.Add(datastructure.NewIncident("expired", pkg.EVENT, pkg.LOW, 0, 0, 500,
		"finished event", testNow.Add(-2*time.Hour), testNow.Add(-time.Hour)))

	reg.Sweep()

	active := reg.ActiveIncidentsNear(0, 0, 1000)
	require.Len(t, active, 1)
	assert.Equal(t, "active", active[0].GetId())
}

func TestRemove(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Add(activeIncident("i1", pkg.ACCIDENT, pkg.HIGH, 0, 0, 500))
	reg.Remove("i1")

	assert.InDelta(t, 1.0, reg.Multiplier("s1"), 1e-9)
}

func TestActiveIncidentsNearRadius(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Add(activeIncident("near", pkg.ACCIDENT, pkg.LOW, 0, 0, 500))
	reg.Add(activeIncident("far", pkg.ACCIDENT, pkg.LOW, 0.5, 0.5, 500))

	near := reg.ActiveIncidentsNear(0, 0, 5000)
	require.Len(t, near, 1)
	assert.Equal(t, "near", near[0].GetId())
}

func TestAffectedSegments(t *testing.T) {
	reg := newTestRegistry(t)
	inc := activeIncident("i1", pkg.WEATHER, pkg.MEDIUM, 0, 0, 1000)

	affected := reg.AffectedSegments(inc)
	require.Len(t, affected, 1)
	assert.Equal(t, "s1", affected[0])
}
