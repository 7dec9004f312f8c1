package model

import "time"

type DayClass string

const (
	DayClassLaboral   DayClass = "laboral"
	DayClassNoLaboral DayClass = "no_laboral"
)

// DateWindow is an inclusive calendar-day range, both bounds normalized
// to UTC day boundaries.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w DateWindow) Contains(day time.Time) bool {
	d := Day(day)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the inclusive number of calendar days in the window.
func (w DateWindow) Days() int {
	return int(w.End.Sub(w.Start)/(24*time.Hour)) + 1
}

// Day truncates a timestamp to its UTC day boundary.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StopEvent is one recorded parking interval. Coordinates are optional:
// a stop without them never merges with any cluster.
type StopEvent struct {
	VehicleID       string
	Day             time.Time
	Latitude        *float64
	Longitude       *float64
	DurationSeconds int64
	Address         string
}

func (s StopEvent) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// DayActivity is one calendar day's activity summary for one vehicle.
// The laboral / no-laboral partition is carried by which VehicleRecord
// list the day lives in, never by a field on the day itself.
type DayActivity struct {
	Day           time.Time
	ActivityHours float64
	DistanceKm    float64
}

// VehicleRecord is the normalized dataset entry for one vehicle.
// Stops are flattened in ascending day order; the two day-class lists
// stay disjoint and are never interleaved.
type VehicleRecord struct {
	ID            string
	Plate         string
	Category      string
	Stops         []StopEvent
	LaboralDays   []DayActivity
	NoLaboralDays []DayActivity
}

func (v VehicleRecord) DaysFor(class DayClass) []DayActivity {
	if class == DayClassNoLaboral {
		return v.NoLaboralDays
	}
	return v.LaboralDays
}

// Label returns the display name for report rows: the plate when
// known, otherwise the raw identifier.
func (v VehicleRecord) Label() string {
	if v.Plate != "" {
		return v.Plate
	}
	return v.ID
}
