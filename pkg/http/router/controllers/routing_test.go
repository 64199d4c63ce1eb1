package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dynaroute/dynaroute/pkg/costfunction"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	helper "github.com/dynaroute/dynaroute/pkg/http/router/routerhelper"
	"github.com/dynaroute/dynaroute/pkg/traffic"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRoutingService struct {
	recalculatedRouteId string
}

func (s *stubRoutingService) CalculateRoute(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
	criteria *costfunction.Criteria) (*datastructure.Route, error) {
	return nil, nil
}

func (s *stubRoutingService) CalculateAlternatives(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
	criteria *costfunction.Criteria, maxCount int) ([]*datastructure.Route, error) {
	return nil, nil
}

func (s *stubRoutingService) Recalculate(ctx context.Context, routeId string, currentLat, currentLon, dstLat, dstLon float64,
	criteria *costfunction.Criteria) (*datastructure.Route, error) {
	s.recalculatedRouteId = routeId
	return nil, nil
}

type stubTrafficService struct{}

func (s *stubTrafficService) Condition(ctx context.Context, segmentId string) (*datastructure.TrafficCondition, error) {
	return &datastructure.TrafficCondition{SegmentId: segmentId}, nil
}

func (s *stubTrafficService) ReportReading(ctx context.Context, sourceName string, reading *traffic.Reading) error {
	return nil
}

type stubIncidentService struct{}

func (s *stubIncidentService) Report(ctx context.Context, incidentType, severity string, lat, lon, radius float64,
	description string, durationMinutes int) (*datastructure.Incident, error) {
	return nil, nil
}

func (s *stubIncidentService) Resolve(ctx context.Context, incidentId string) error {
	return nil
}

func (s *stubIncidentService) ActiveNear(ctx context.Context, lat, lon, radius float64) ([]*datastructure.Incident, error) {
	return nil, nil
}

func newTestAPI() (*routingAPI, *stubRoutingService, *httprouter.Router) {
	routingService := &stubRoutingService{}
	api := New(routingService, &stubTrafficService{}, &stubIncidentService{}, zap.NewNop())
	return api, routingService, httprouter.New()
}

func TestRoutesRegistration(t *testing.T) {
	api, _, router := newTestAPI()

	// the whole route table must register on one router without conflicts
	require.NotPanics(t, func() {
		api.Routes(helper.NewRouteGroup(router, "/api"))
	})

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/routes"},
		{http.MethodPost, "/api/routes/alternatives"},
		{http.MethodPost, "/api/routes/recalculate"},
		{http.MethodGet, "/api/traffic/conditions/s1"},
		{http.MethodPost, "/api/traffic/readings"},
		{http.MethodGet, "/api/incidents"},
		{http.MethodPost, "/api/incidents"},
		{http.MethodDelete, "/api/incidents/inc-1"},
	} {
		handle, _, _ := router.Lookup(route.method, route.path)
		assert.NotNilf(t, handle, "%s %s is not routed", route.method, route.path)
	}
}

func TestRecalculateRouteIdFromBody(t *testing.T) {
	api, routingService, router := newTestAPI()
	api.Routes(helper.NewRouteGroup(router, "/api"))

	body := []byte(`{
		"route_id": "route-123",
		"current_lat": 0.0, "current_lon": 0.0,
		"destination_lat": 0.01, "destination_lon": 0.02,
		"criteria": {"objective": "FASTEST"}
	}`)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/routes/recalculate", bytes.NewReader(body))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "route-123", routingService.recalculatedRouteId)
}

func TestRecalculateRejectsMissingRouteId(t *testing.T) {
	api, routingService, router := newTestAPI()
	api.Routes(helper.NewRouteGroup(router, "/api"))

	body := []byte(`{
		"current_lat": 0.0, "current_lon": 0.0,
		"destination_lat": 0.01, "destination_lon": 0.02,
		"criteria": {"objective": "FASTEST"}
	}`)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/routes/recalculate", bytes.NewReader(body))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, routingService.recalculatedRouteId)
}
