package traffic

import (
	"context"
	"sync"
	"time"

	"github.com/dynaroute/dynaroute/pkg/util"
)

// Reading is one raw traffic observation for a segment, as delivered by the
// ingestion pipeline.
type Reading struct {
	SegmentId     string    `json:"segment_id"`
	Speed         float64   `json:"speed"`      // km/h
	Congestion    float64   `json:"congestion"` // 0.0 .. 1.0
	Density       float64   `json:"density"`    // vehicles per km
	FlowRate      float64   `json:"flow_rate"`  // vehicles per hour
	Precipitation float64   `json:"precipitation"`
	Visibility    float64   `json:"visibility"`
	Source        string    `json:"source"`
	Timestamp     time.Time `json:"timestamp"`
}

// DataSource is a single live traffic feed (GPS probes, roadside sensors, an
// external API). A source that errors is skipped by the aggregator, never
// fatal.
type DataSource interface {
	Name() string
	Reliability() float64
	FetchReading(ctx context.Context, segmentId string) (*Reading, error)
}

// ProbeSource buffers the latest reading per segment pushed by the ingestion
// pipeline and serves it back to the aggregator.
type ProbeSource struct {
	name        string
	reliability float64

	mu       sync.RWMutex
	readings map[string]*Reading
}

func NewProbeSource(name string, reliability float64) *ProbeSource {
	return &ProbeSource{
		name:        name,
		reliability: reliability,
		readings:    make(map[string]*Reading),
	}
}

func (ps *ProbeSource) Name() string {
	return ps.name
}

func (ps *ProbeSource) Reliability() float64 {
	return ps.reliability
}

// Report stores the latest observation for a segment, overwriting any older
// one.
func (ps *ProbeSource) Report(reading *Reading) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	prev, ok := ps.readings[reading.SegmentId]
	if ok && prev.Timestamp.After(reading.Timestamp) {
		return
	}
	ps.readings[reading.SegmentId] = reading
}

func (ps *ProbeSource) FetchReading(_ context.Context, segmentId string) (*Reading, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	reading, ok := ps.readings[segmentId]
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrSourceUnavailable,
			"source %s has no reading for segment %s", ps.name, segmentId)
	}
	return reading, nil
}
