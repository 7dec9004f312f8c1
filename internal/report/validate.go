package report

import (
	"errors"
	"time"

	"fleet-report-service/internal/model"
)

// MaxWindowDays is the widest date range a single report may cover.
const MaxWindowDays = 31

var (
	ErrBelowMinimumStart    = errors.New("start date is before the minimum allowed date")
	ErrEndBeforeStart       = errors.New("end date is before start date")
	ErrSpanTooLong          = errors.New("date range exceeds the maximum span")
	ErrEndNotInPast         = errors.New("end date must be before today")
	ErrMissingRequiredField = errors.New("missing required field")
)

// ValidateWindow checks a requested date range against the operational
// floor, the maximum span and the no-future rule. Rules are applied in
// order and the first violation wins. All inputs are normalized to UTC
// day boundaries before comparison.
func ValidateWindow(start, end, today, minStart time.Time) (model.DateWindow, error) {
	start = model.Day(start)
	end = model.Day(end)
	today = model.Day(today)
	minStart = model.Day(minStart)

	if start.Before(minStart) {
		return model.DateWindow{}, ErrBelowMinimumStart
	}
	if end.Before(start) {
		return model.DateWindow{}, ErrEndBeforeStart
	}
	if end.Sub(start) > MaxWindowDays*24*time.Hour {
		return model.DateWindow{}, ErrSpanTooLong
	}
	if !end.Before(today) {
		return model.DateWindow{}, ErrEndNotInPast
	}

	return model.DateWindow{Start: start, End: end}, nil
}

// IsValidationError reports whether err is one of the query validation
// failures that should be surfaced to the caller as a bad request.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrBelowMinimumStart) ||
		errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrSpanTooLong) ||
		errors.Is(err, ErrEndNotInPast) ||
		errors.Is(err, ErrMissingRequiredField)
}
