package model

import "time"

// ReportQuery carries every filter a report run depends on. It is
// passed by value into the pipeline; no component reads ambient state.
type ReportQuery struct {
	Kind            ReportKind
	StartDate       time.Time
	EndDate         time.Time
	VehicleCategory string
	DayClass        DayClass
	Page            int
}
