package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	helper "github.com/dynaroute/dynaroute/pkg/http/router/routerhelper"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService  RoutingService
	trafficService  TrafficService
	incidentService IncidentService
	log             *zap.Logger
}

func New(routingService RoutingService, trafficService TrafficService,
	incidentService IncidentService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService:  routingService,
		trafficService:  trafficService,
		incidentService: incidentService,
		log:             log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/routes", api.computeRoute)
	group.POST("/routes/alternatives", api.alternativeRoutes)
	group.POST("/routes/recalculate", api.recalculateRoute)

	group.GET("/traffic/conditions/:segment_id", api.trafficCondition)
	group.POST("/traffic/readings", api.reportTrafficReading)

	group.GET("/incidents", api.activeIncidents)
	group.POST("/incidents", api.reportIncident)
	group.DELETE("/incidents/:incident_id", api.resolveIncident)
}

// validateRequest decodes the body into request and runs struct validation,
// writing the error response itself. Returns false when the handler must
// stop.
func (api *routingAPI) validateRequest(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return false
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return false
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

func (api *routingAPI) computeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request computeRouteRequest
	if !api.validateRequest(w, r, &request) {
		return
	}

	criteria, err := request.Criteria.toCriteria()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	route, err := api.routingService.CalculateRoute(r.Context(), request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, criteria)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": route}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) alternativeRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request alternativeRoutesRequest
	if !api.validateRequest(w, r, &request) {
		return
	}

	criteria, err := request.Criteria.toCriteria()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	routes, err := api.routingService.CalculateAlternatives(r.Context(), request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, criteria, request.MaxAlternatives)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": routes}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) recalculateRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request recalculateRequest
	if !api.validateRequest(w, r, &request) {
		return
	}

	criteria, err := request.Criteria.toCriteria()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	route, err := api.routingService.Recalculate(r.Context(), request.RouteId, request.CurrentLat, request.CurrentLon,
		request.DestinationLat, request.DestinationLon, criteria)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": route}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) trafficCondition(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	segmentId := p.ByName("segment_id")
	if segmentId == "" {
		api.BadRequestResponse(w, r, errors.New("segment_id is required"))
		return
	}

	condition, err := api.trafficService.Condition(r.Context(), segmentId)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": condition}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) reportTrafficReading(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request trafficReadingRequest
	if !api.validateRequest(w, r, &request) {
		return
	}

	if err := api.trafficService.ReportReading(r.Context(), request.Source, request.toReading()); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusAccepted, envelope{"data": "reading accepted"}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) activeIncidents(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		lat, lon, radius float64
		err              error
	)

	query := r.URL.Query()

	lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	radius, err = strconv.ParseFloat(query.Get("radius"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("radius is required and must be a valid float"))
		return
	}

	incidents, err := api.incidentService.ActiveNear(r.Context(), lat, lon, radius)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewIncidentsResponse(incidents)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) reportIncident(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request reportIncidentRequest
	if !api.validateRequest(w, r, &request) {
		return
	}

	incident, err := api.incidentService.Report(r.Context(), request.Type, request.Severity,
		request.Lat, request.Lon, request.Radius, request.Description, request.DurationMinutes)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusCreated, envelope{"data": NewIncidentResponse(incident)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) resolveIncident(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	incidentId := p.ByName("incident_id")
	if incidentId == "" {
		api.BadRequestResponse(w, r, errors.New("incident_id is required"))
		return
	}

	if err := api.incidentService.Resolve(r.Context(), incidentId); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": "incident resolved"}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
