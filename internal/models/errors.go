package models

import "fmt"

// ErrorCode is a machine-checkable failure code carried by the typed errors
// below. Callers match with errors.As and branch on Code.
type ErrorCode string

const (
	ErrTooFewWeeks         ErrorCode = "too_few_weeks"
	ErrNonPositiveDistance ErrorCode = "non_positive_distance"
	ErrBelowHalfMarathon   ErrorCode = "below_half_marathon"
	ErrInvalidUnit         ErrorCode = "invalid_unit"
	ErrInvalidLevel        ErrorCode = "invalid_level"

	ErrPaceMalformed  ErrorCode = "pace_malformed"
	ErrPaceOutOfRange ErrorCode = "pace_out_of_range"

	ErrZoneOrder ErrorCode = "zone_order"
)

// RequestError reports an invalid TrainingRequest. Fatal: the builder
// raises it before any computation and nothing recovers it internally.
type RequestError struct {
	Code    ErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid training request: %s (%s)", e.Message, e.Code)
}

// PaceError reports a pace string that could not be parsed or falls outside
// sane bounds. Input preserves the offending string for the caller's hint.
type PaceError struct {
	Code    ErrorCode
	Input   string
	Message string
}

func (e *PaceError) Error() string {
	return fmt.Sprintf("bad pace %q: %s (%s)", e.Input, e.Message, e.Code)
}

// ZoneOrderError reports a pace zone set that violates the strict
// interval < tempo < marathon < easy ordering. It names the inconsistent
// pair and the fitness score that produced it: the score is physiologically
// incompatible with the assumed zone factors and must not be clamped away.
type ZoneOrderError struct {
	Pair         string // "tempo-vs-easy", "tempo-vs-marathon", "interval-vs-tempo"
	FitnessScore float64
}

func (e *ZoneOrderError) Error() string {
	return fmt.Sprintf("inconsistent pace zones (%s) at fitness score %.1f (%s)",
		e.Pair, e.FitnessScore, ErrZoneOrder)
}
