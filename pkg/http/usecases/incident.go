package usecases

import (
	"context"
	"time"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/datastructure"
	"github.com/dynaroute/dynaroute/pkg/incident"
	"github.com/dynaroute/dynaroute/pkg/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IncidentService struct {
	log      *zap.Logger
	registry *incident.Registry
}

func NewIncidentService(log *zap.Logger, registry *incident.Registry) *IncidentService {
	return &IncidentService{log: log, registry: registry}
}

func (is *IncidentService) Report(ctx context.Context, incidentType, severity string, lat, lon, radius float64,
	description string, durationMinutes int) (*datastructure.Incident, error) {
	if durationMinutes <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "duration must be positive")
	}

	now := time.Now()
	inc := datastructure.NewIncident(
		uuid.NewString(),
		pkg.GetIncidentType(incidentType),
		pkg.GetSeverity(severity),
		lat, lon, radius,
		description,
		now,
		now.Add(time.Duration(durationMinutes)*time.Minute),
	)
	is.registry.Add(inc)

	is.log.Info("incident reported",
		zap.String("incident_id", inc.GetId()),
		zap.String("type", inc.GetType().String()),
		zap.String("severity", inc.GetSeverity().String()),
		zap.Int("affected_segments", len(is.registry.AffectedSegments(inc))))

	return inc, nil
}

func (is *IncidentService) Resolve(ctx context.Context, incidentId string) error {
	is.registry.Remove(incidentId)
	is.log.Info("incident resolved", zap.String("incident_id", incidentId))
	return nil
}

func (is *IncidentService) ActiveNear(ctx context.Context, lat, lon, radius float64) ([]*datastructure.Incident, error) {
	return is.registry.ActiveIncidentsNear(lat, lon, radius), nil
}
