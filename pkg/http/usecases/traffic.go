package usecases

import (
	"context"

	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/traffic"
	"github.com/dynaroute/dynaroute/pkg/util"
	"go.uber.org/zap"
)

// TrafficService exposes aggregated conditions and accepts raw readings from
// the ingestion endpoint. Readings are routed to the probe source they name,
// the aggregator folds them in on the next refresh.
type TrafficService struct {
	log        *zap.Logger
	aggregator *traffic.Aggregator
	segments   SegmentResolver
	probes     map[string]*traffic.ProbeSource
}

func NewTrafficService(log *zap.Logger, aggregator *traffic.Aggregator,
	segments SegmentResolver, probes []*traffic.ProbeSource) *TrafficService {
	byName := make(map[string]*traffic.ProbeSource, len(probes))
	for _, probe := range probes {
		byName[probe.Name()] = probe
	}
	return &TrafficService{
		log:        log,
		aggregator: aggregator,
		segments:   segments,
		probes:     byName,
	}
}

func (ts *TrafficService) Condition(ctx context.Context, segmentId string) (*datastructure.TrafficCondition, error) {
	if _, ok := ts.segments.FindSegment(segmentId); !ok {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown segment %s", segmentId)
	}
	return ts.aggregator.Condition(ctx, segmentId), nil
}

func (ts *TrafficService) ReportReading(ctx context.Context, sourceName string, reading *traffic.Reading) error {
	if _, ok := ts.segments.FindSegment(reading.SegmentId); !ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "unknown segment %s", reading.SegmentId)
	}
	probe, ok := ts.probes[sourceName]
	if !ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "unknown traffic source %s", sourceName)
	}

	probe.Report(reading)
	ts.log.Debug("traffic reading accepted",
		zap.String("source", sourceName),
		zap.String("segment_id", reading.SegmentId))
	return nil
}
