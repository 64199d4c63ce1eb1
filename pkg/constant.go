package pkg

import "strings"

// enum of road class
type RoadClass uint8

const (
	HIGHWAY RoadClass = iota
	ARTERIAL
	COLLECTOR
	LOCAL
	RESIDENTIAL
	BRIDGE
	TUNNEL
)

func GetRoadClass(roadClass string) RoadClass {
	switch strings.ToLower(roadClass) {
	case "highway":
		return HIGHWAY
	case "arterial":
		return ARTERIAL
	case "collector":
		return COLLECTOR
	case "local":
		return LOCAL
	case "residential":
		return RESIDENTIAL
	case "bridge":
		return BRIDGE
	case "tunnel":
		return TUNNEL
	}
	return LOCAL
}

func (rc RoadClass) String() string {
	switch rc {
	case HIGHWAY:
		return "highway"
	case ARTERIAL:
		return "arterial"
	case COLLECTOR:
		return "collector"
	case LOCAL:
		return "local"
	case RESIDENTIAL:
		return "residential"
	case BRIDGE:
		return "bridge"
	case TUNNEL:
		return "tunnel"
	}
	return "local"
}

// RoadClassMultiplier favors highways and penalizes small local roads when
// computing travel-time weights.
func (rc RoadClass) RoadClassMultiplier() float64 {
	switch rc {
	case HIGHWAY:
		return 0.8
	case ARTERIAL:
		return 1.0
	case COLLECTOR:
		return 1.1
	case BRIDGE, TUNNEL:
		return 1.2
	case LOCAL:
		return 1.4
	case RESIDENTIAL:
		return 1.6
	}
	return 1.0
}

// enum of route optimization objective
type Objective uint8

const (
	FASTEST Objective = iota
	SHORTEST
	ECONOMICAL
	ECO_FRIENDLY
	SCENIC
	SAFEST
	COMFORTABLE
	INVALID_OBJECTIVE
)

func GetObjective(objective string) Objective {
	switch strings.ToUpper(objective) {
	case "FASTEST":
		return FASTEST
	case "SHORTEST":
		return SHORTEST
	case "ECONOMICAL":
		return ECONOMICAL
	case "ECO_FRIENDLY":
		return ECO_FRIENDLY
	case "SCENIC":
		return SCENIC
	case "SAFEST":
		return SAFEST
	case "COMFORTABLE":
		return COMFORTABLE
	}
	return INVALID_OBJECTIVE
}

func (o Objective) String() string {
	switch o {
	case FASTEST:
		return "FASTEST"
	case SHORTEST:
		return "SHORTEST"
	case ECONOMICAL:
		return "ECONOMICAL"
	case ECO_FRIENDLY:
		return "ECO_FRIENDLY"
	case SCENIC:
		return "SCENIC"
	case SAFEST:
		return "SAFEST"
	case COMFORTABLE:
		return "COMFORTABLE"
	}
	return "INVALID"
}

// enum of incident type
type IncidentType uint8

const (
	ACCIDENT IncidentType = iota
	CONSTRUCTION
	WEATHER
	EVENT
	ROAD_CLOSURE
	VEHICLE_BREAKDOWN
)

func GetIncidentType(incidentType string) IncidentType {
	switch strings.ToUpper(incidentType) {
	case "ACCIDENT":
		return ACCIDENT
	case "CONSTRUCTION":
		return CONSTRUCTION
	case "WEATHER":
		return WEATHER
	case "EVENT":
		return EVENT
	case "ROAD_CLOSURE":
		return ROAD_CLOSURE
	case "VEHICLE_BREAKDOWN":
		return VEHICLE_BREAKDOWN
	}
	return VEHICLE_BREAKDOWN
}

func (it IncidentType) String() string {
	switch it {
	case ACCIDENT:
		return "ACCIDENT"
	case CONSTRUCTION:
		return "CONSTRUCTION"
	case WEATHER:
		return "WEATHER"
	case EVENT:
		return "EVENT"
	case ROAD_CLOSURE:
		return "ROAD_CLOSURE"
	case VEHICLE_BREAKDOWN:
		return "VEHICLE_BREAKDOWN"
	}
	return "VEHICLE_BREAKDOWN"
}

// TypeMultiplier. weight multiplier per incident type. road closures are made
// prohibitively expensive but never infinite, so a closed-off component stays
// reachable.
func (it IncidentType) TypeMultiplier() float64 {
	switch it {
	case ACCIDENT:
		return 1.5
	case CONSTRUCTION:
		return 1.3
	case WEATHER:
		return 1.2
	case EVENT:
		return 1.4
	case ROAD_CLOSURE:
		return 5.0
	case VEHICLE_BREAKDOWN:
		return 1.1
	}
	return 1.0
}

// enum of incident severity
type Severity uint8

const (
	LOW Severity = iota
	MEDIUM
	HIGH
	CRITICAL
)

func GetSeverity(severity string) Severity {
	switch strings.ToUpper(severity) {
	case "LOW":
		return LOW
	case "MEDIUM":
		return MEDIUM
	case "HIGH":
		return HIGH
	case "CRITICAL":
		return CRITICAL
	}
	return LOW
}

func (s Severity) String() string {
	switch s {
	case LOW:
		return "LOW"
	case MEDIUM:
		return "MEDIUM"
	case HIGH:
		return "HIGH"
	case CRITICAL:
		return "CRITICAL"
	}
	return "LOW"
}

func (s Severity) SeverityMultiplier() float64 {
	switch s {
	case LOW:
		return 1.3
	case MEDIUM:
		return 1.8
	case HIGH:
		return 2.5
	case CRITICAL:
		return 3.0
	}
	return 1.0
}

// enum of vehicle type
type VehicleType uint8

const (
	CAR VehicleType = iota
	MOTORCYCLE
	TRUCK
	ELECTRIC_VEHICLE
	HYBRID
)

func GetVehicleType(vehicleType string) VehicleType {
	switch strings.ToUpper(vehicleType) {
	case "CAR":
		return CAR
	case "MOTORCYCLE":
		return MOTORCYCLE
	case "TRUCK":
		return TRUCK
	case "ELECTRIC_VEHICLE":
		return ELECTRIC_VEHICLE
	case "HYBRID":
		return HYBRID
	}
	return CAR
}

const (
	INF_WEIGHT float64 = 1e15

	// dynamic weight model
	CONGESTION_WEIGHT_FACTOR       = 0.5
	PEAK_HOUR_MULTIPLIER           = 1.3
	WEEKEND_MULTIPLIER             = 0.8
	MAX_WEATHER_MULTIPLIER         = 1.5
	TRAFFIC_LIGHT_PENALTY_SECONDS  = 30.0
	AVOID_TOLLS_PENALTY_FACTOR     = 10.0
	AVOID_HIGHWAYS_PENALTY_FACTOR  = 5.0
	TOLL_FLAT_FEE                  = 5.0
	FUEL_COST_PER_KM               = 0.15
	ECONOMICAL_HEURISTIC_PER_KM    = 0.2
	MAX_REASONABLE_SPEED_KMH       = 120.0
	DEFAULT_FREE_FLOW_SPEED_KMH    = 50.0

	// traffic data freshness
	TRAFFIC_CONDITION_TTL_SECONDS = 300
	AGGREGATE_RELIABILITY         = 0.8
	DEFAULT_RELIABILITY           = 0.5

	// graph snapshot
	BOUNDING_BOX_PADDING_DEGREE = 0.1

	// routes expire after this window and must be recomputed
	ROUTE_VALIDITY_MINUTES = 15

	// alternative routes are duplicates only when both thresholds hold
	ALTERNATIVE_MIN_DISTANCE_DIFF_METERS = 100.0
	ALTERNATIVE_MIN_TIME_DIFF_SECONDS    = 30.0

	// weight vector validation tolerance
	CRITERIA_WEIGHT_SUM_TOLERANCE = 0.01
)
