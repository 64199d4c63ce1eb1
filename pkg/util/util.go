package util

import (
	"errors"
	"fmt"
	"math"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s", e.msg)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrBadParamInput       = errors.New("given Param is not valid")

	// routing error taxonomy. InvalidEndpoint and InvalidCriteria are caller
	// errors surfaced immediately, NoRouteFound is a legitimate negative
	// outcome, SourceUnavailable is absorbed by the traffic aggregator and
	// never reaches a caller.
	ErrInvalidEndpoint   = errors.New("origin or destination not found in road network")
	ErrNoRouteFound      = errors.New("no route found between origin and destination")
	ErrInvalidCriteria   = errors.New("invalid optimization criteria")
	ErrSourceUnavailable = errors.New("traffic data source unavailable")
)

func GetCode(err error) error {
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Code()
	}
	return err
}

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr))
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
