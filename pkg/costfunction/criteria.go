package costfunction

import (
	"math"

	"github.com/dynaroute/dynaroute/pkg"
	"github.com/dynaroute/dynaroute/pkg/util"
)

// Criteria selects the optimization objective and the user constraints a
// search runs under. Hard limits of zero mean unlimited.
type Criteria struct {
	Objective pkg.Objective

	MaxDistance   float64 // meters
	MaxTravelTime float64 // seconds
	MaxCost       float64 // currency units

	AvoidTolls    bool
	AvoidHighways bool
	PreferScenic  bool

	VehicleType pkg.VehicleType

	// multi-factor weight vector, consulted only by weighted-sum requests;
	// must sum to 1.0 within tolerance
	TimeWeight     float64
	DistanceWeight float64
	CostWeight     float64
	ComfortWeight  float64
	SafetyWeight   float64
}

func NewCriteria(objective pkg.Objective) *Criteria {
	return &Criteria{
		Objective:      objective,
		VehicleType:    pkg.CAR,
		TimeWeight:     0.4,
		DistanceWeight: 0.2,
		CostWeight:     0.2,
		ComfortWeight:  0.1,
		SafetyWeight:   0.1,
	}
}

// Validate rejects unknown objectives and weight vectors that fail to sum to
// 1.0. Validation runs before any search begins, a violation is a caller
// error, never a search failure.
func (c *Criteria) Validate() error {
	if c.Objective >= pkg.INVALID_OBJECTIVE {
		return util.WrapErrorf(nil, util.ErrInvalidCriteria, "unknown optimization objective")
	}

	sum := c.TimeWeight + c.DistanceWeight + c.CostWeight + c.ComfortWeight + c.SafetyWeight
	if math.Abs(sum-1.0) > pkg.CRITERIA_WEIGHT_SUM_TOLERANCE {
		return util.WrapErrorf(nil, util.ErrInvalidCriteria,
			"criteria weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}
