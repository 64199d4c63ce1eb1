package main

import (
	"context"
	"flag"
	"time"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/costfunction"
	"github.com/dynaroute/dynaroute/pkg/engine/routing"
	"github.com/dynaroute/dynaroute/pkg/geo"
	"github.com/dynaroute/dynaroute/pkg/http"
	"github.com/dynaroute/dynaroute/pkg/http/usecases"
	"github.com/dynaroute/dynaroute/pkg/incident"
	"github.com/dynaroute/dynaroute/pkg/logger"
	"github.com/dynaroute/dynaroute/pkg/spatialindex"
	"github.com/dynaroute/dynaroute/pkg/storage"
	"github.com/dynaroute/dynaroute/pkg/traffic"
	"github.com/dynaroute/dynaroute/pkg/util"
	"go.uber.org/zap"
)

var (
	networkFile     = flag.String("network_file", "./data/network.json", "road network JSON file")
	snapRadius      = flag.Float64("snap_radius", 1600.0, "max distance in meters when snapping a position to the road network")
	refreshInterval = flag.Duration("traffic_refresh_interval", 30*time.Second, "interval between background traffic refresh batches")
	refreshBatch    = flag.Int("traffic_refresh_batch", 256, "segments refreshed per background tick")
	sweepInterval   = flag.Duration("incident_sweep_interval", time.Minute, "interval between expired incident sweeps")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	store, err := storage.LoadNetworkFromFile(*networkFile, logger)
	if err != nil {
		panic(err)
	}

	segmentIndex := spatialindex.NewSegmentIndex()
	segmentIndex.Build(store, logger)

	aggregator := traffic.NewAggregator(func(segmentId string) float64 {
		segment, ok := store.FindSegment(segmentId)
		if !ok {
			return pkg.DEFAULT_FREE_FLOW_SPEED_KMH
		}
		return storage.FreeFlowSpeed(segment)
	}, pkg.TRAFFIC_CONDITION_TTL_SECONDS*time.Second, logger)

	probes := []*traffic.ProbeSource{
		traffic.NewProbeSource("gps_probes", 0.9),
		traffic.NewProbeSource("road_sensors", 0.95),
		traffic.NewProbeSource("traffic_api", 0.7),
	}
	for _, probe := range probes {
		aggregator.RegisterSource(probe)
	}

	registry := incident.NewRegistry(func(segmentId string) (geo.Coordinate, bool) {
		from, to, ok := store.SegmentCoordinates(segmentId)
		if !ok {
			return geo.Coordinate{}, false
		}
		midLat, midLon := geo.MidPoint(from.Lat, from.Lon, to.Lat, to.Lon)
		return geo.NewCoordinate(midLat, midLon), true
	}, segmentIndex, logger)

	costFunction := costfunction.NewDynamicCostFunction(aggregator, registry)
	routingEngine := routing.NewRoutingEngine(store, aggregator, costFunction, logger)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	refresher := traffic.NewRefresher(aggregator, store.SegmentIds, *refreshInterval,
		*refreshBatch, 8, logger)
	go refresher.Run(ctx)
	go registry.Run(ctx, *sweepInterval)

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine, segmentIndex, store, *snapRadius)
	trafficService := usecases.NewTrafficService(logger, aggregator, store, probes)
	incidentService := usecases.NewIncidentService(logger, registry)

	api.Use(ctx, logger, routingService, trafficService, incidentService)

	signal := http.GracefulShutdown()

	logger.Info("DynaRoute Routing Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
