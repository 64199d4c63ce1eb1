package storage

import (
	"encoding/json"
	"os"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/util"
	"go.uber.org/zap"
)

type intersectionRecord struct {
	Id                   string  `json:"id"`
	Lat                  float64 `json:"lat"`
	Lon                  float64 `json:"lon"`
	Elevation            float64 `json:"elevation"`
	TrafficLight         bool    `json:"traffic_light"`
	TrafficLightDuration float64 `json:"traffic_light_duration"`
}

type segmentRecord struct {
	Id             string  `json:"id"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	Name           string  `json:"name"`
	RoadClass      string  `json:"road_class"`
	Length         float64 `json:"length"`
	BaseSpeedLimit float64 `json:"base_speed_limit"`
	Lanes          int     `json:"lanes"`
	OneWay         bool    `json:"one_way"`
	TollRoad       bool    `json:"toll_road"`
	Grade          float64 `json:"grade"`
	SurfaceType    string  `json:"surface_type"`
}

type networkFile struct {
	Intersections []intersectionRecord `json:"intersections"`
	Segments      []segmentRecord      `json:"segments"`
}

// LoadNetworkFromFile populates a graph store from a JSON network dump.
// Intersections load first so every segment sees both its endpoints.
func LoadNetworkFromFile(path string, log *zap.Logger) (*InMemoryGraphStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "open network file %s", path)
	}
	defer file.Close()

	var network networkFile
	if err := json.NewDecoder(file).Decode(&network); err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "decode network file %s", path)
	}

	store := NewInMemoryGraphStore()
	for _, rec := range network.Intersections {
		node := datastructure.NewIntersection(rec.Id, rec.Lat, rec.Lon, rec.Elevation)
		if rec.TrafficLight {
			node.SetTrafficLight(rec.TrafficLightDuration)
		}
		store.AddIntersection(node)
	}

	for _, rec := range network.Segments {
		segment := datastructure.NewRoadSegment(rec.Id, rec.From, rec.To, rec.Name,
			pkg.GetRoadClass(rec.RoadClass), rec.Length, rec.BaseSpeedLimit, rec.Lanes,
			rec.OneWay, rec.TollRoad, rec.Grade, rec.SurfaceType)
		if err := store.AddRoadSegment(segment); err != nil {
			return nil, err
		}
	}

	log.Info("road network loaded",
		zap.String("path", path),
		zap.Int("intersections", len(network.Intersections)),
		zap.Int("segments", len(network.Segments)))

	return store, nil
}
