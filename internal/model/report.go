package model

type ReportKind string

const (
	ReportParking ReportKind = "parking"
	ReportUsage   ReportKind = "usage"
	ReportIdle    ReportKind = "idle"
)

// ClusterGroup is the merged representative of one or more stop events
// judged to be the same place. The coordinate and address are those of
// the first stop that opened the cluster; DurationSeconds is the exact
// sum of every absorbed stop.
type ClusterGroup struct {
	Latitude        *float64
	Longitude       *float64
	DurationSeconds int64
	Address         string
}

func (c ClusterGroup) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// VehicleActivityStats is the aggregation result for one vehicle over
// a window and day class. Recomputed on every query, never persisted.
type VehicleActivityStats struct {
	VehicleID          string
	TotalSeconds       int64
	TotalKm            float64
	AvgActivityPercent float64
	MatchedDays        int
}

// VehicleStanding pairs a vehicle with its aggregation result. A nil
// Stats means "no data in window", which is distinct from zero
// activity and sorts after every vehicle that has data.
type VehicleStanding struct {
	VehicleID string
	Label     string
	Stats     *VehicleActivityStats
}

type ReportRow struct {
	Rank            int      `json:"rank"`
	VehicleID       string   `json:"vehicle_id"`
	VehicleLabel    string   `json:"vehicle_label"`
	HasData         bool     `json:"has_data"`
	Duration        string   `json:"duration"`
	DistanceKm      float64  `json:"distance_km"`
	ActivityPercent *float64 `json:"activity_percent,omitempty"`
}

type ClusterRow struct {
	Rank      int      `json:"rank"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Duration  string   `json:"duration"`
}

// ParkingSection is one vehicle's block of the parking report. An
// empty Clusters slice renders as "no records in range".
type ParkingSection struct {
	VehicleID    string       `json:"vehicle_id"`
	VehicleLabel string       `json:"vehicle_label"`
	Clusters     []ClusterRow `json:"clusters"`
}

type Report struct {
	Kind      ReportKind       `json:"kind"`
	Window    DateWindow       `json:"window"`
	DayClass  DayClass         `json:"day_class,omitempty"`
	Sections  []ParkingSection `json:"sections,omitempty"`
	Rows      []ReportRow      `json:"rows,omitempty"`
	Page      int              `json:"page"`
	PageCount int              `json:"page_count"`
}
