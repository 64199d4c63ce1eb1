package datastructure

// Intersection is a node of the road network. Immutable after network load,
// except for the traffic-light metadata which updates rarely.
type Intersection struct {
	id                   string
	lat                  float64
	lon                  float64
	elevation            float64
	trafficLight         bool
	trafficLightDuration float64 // signal cycle duration in seconds
}

func NewIntersection(id string, lat, lon, elevation float64) *Intersection {
	return &Intersection{
		id:        id,
		lat:       lat,
		lon:       lon,
		elevation: elevation,
	}
}

func (in *Intersection) GetId() string {
	return in.id
}

func (in *Intersection) GetLat() float64 {
	return in.lat
}

func (in *Intersection) GetLon() float64 {
	return in.lon
}

func (in *Intersection) GetElevation() float64 {
	return in.elevation
}

func (in *Intersection) HasTrafficLight() bool {
	return in.trafficLight
}

func (in *Intersection) GetTrafficLightDuration() float64 {
	return in.trafficLightDuration
}

func (in *Intersection) SetTrafficLight(duration float64) {
	in.trafficLight = true
	in.trafficLightDuration = duration
}
