package datastructure

import (
	"time"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/geo"
)

// Incident is a time-bounded hazard affecting every segment whose reference
// point lies within its radius.
type Incident struct {
	id           string
	incidentType pkg.IncidentType
	severity     pkg.Severity
	lat          float64
	lon          float64
	radius       float64 // affected radius in meters
	description  string
	startTime    time.Time
	endTime      time.Time
}

func NewIncident(id string, incidentType pkg.IncidentType, severity pkg.Severity,
	lat, lon, radius float64, description string, startTime, endTime time.Time) *Incident {
	return &Incident{
		id:           id,
		incidentType: incidentType,
		severity:     severity,
		lat:          lat,
		lon:          lon,
		radius:       radius,
		description:  description,
		startTime:    startTime,
		endTime:      endTime,
	}
}

func (inc *Incident) GetId() string {
	return inc.id
}

func (inc *Incident) GetType() pkg.IncidentType {
	return inc.incidentType
}

func (inc *Incident) GetSeverity() pkg.Severity {
	return inc.severity
}

func (inc *Incident) GetLat() float64 {
	return inc.lat
}

func (inc *Incident) GetLon() float64 {
	return inc.lon
}

func (inc *Incident) GetRadius() float64 {
	return inc.radius
}

func (inc *Incident) GetDescription() string {
	return inc.description
}

func (inc *Incident) GetStartTime() time.Time {
	return inc.startTime
}

func (inc *Incident) GetEndTime() time.Time {
	return inc.endTime
}

// IsActiveAt reports whether startTime <= now <= endTime. Applied at every
// read, independent of the registry sweep interval.
func (inc *Incident) IsActiveAt(now time.Time) bool {
	return !inc.startTime.After(now) && !inc.endTime.Before(now)
}

// AffectsLocation reports whether the great-circle distance from the incident
// to (lat, lon) is within the affect radius.
func (inc *Incident) AffectsLocation(lat, lon float64) bool {
	return geo.HaversineDistanceMeters(inc.lat, inc.lon, lat, lon) <= inc.radius
}

// ImpactMultiplier. severity factor times type factor, compounded
// multiplicatively across incidents by the registry.
func (inc *Incident) ImpactMultiplier() float64 {
	return inc.severity.SeverityMultiplier() * inc.incidentType.TypeMultiplier()
}
