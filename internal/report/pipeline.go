package report

import (
	"fmt"
	"time"

	"fleet-report-service/internal/model"
)

// Params are the tuning knobs of a report run. Zero values fall back
// to the engine defaults.
type Params struct {
	ClusterRadiusMeters float64
	TopLocations        int
	PageSize            int
	MinStartDate        time.Time
}

// DefaultTopLocations caps the parking report at the longest-duration
// clusters per vehicle.
const DefaultTopLocations = 5

// Pipeline turns an immutable dataset snapshot and a validated query
// into report rows. It holds no mutable state: every run is a pure
// function of its arguments, so concurrent runs need no locking.
type Pipeline struct {
	params Params
}

func NewPipeline(params Params) *Pipeline {
	if params.ClusterRadiusMeters <= 0 {
		params.ClusterRadiusMeters = DefaultClusterRadiusMeters
	}
	if params.TopLocations <= 0 {
		params.TopLocations = DefaultTopLocations
	}
	if params.PageSize <= 0 {
		params.PageSize = DefaultPageSize
	}
	return &Pipeline{params: params}
}

// Run validates the query window and produces the requested report.
// A validation failure stops the run before any computation; vehicles
// without data in the window are kept as explicit placeholders, never
// dropped. Output order is deterministic for identical inputs.
func (p *Pipeline) Run(dataset []model.VehicleRecord, query model.ReportQuery, today time.Time) (*model.Report, error) {
	window, err := ValidateWindow(query.StartDate, query.EndDate, today, p.params.MinStartDate)
	if err != nil {
		return nil, err
	}

	switch query.Kind {
	case model.ReportParking:
		return p.parkingReport(dataset, window), nil
	case model.ReportUsage:
		return p.activityReport(model.ReportUsage, dataset, window, query), nil
	case model.ReportIdle:
		return p.activityReport(model.ReportIdle, dataset, window, query), nil
	default:
		return nil, fmt.Errorf("unknown report kind %q", query.Kind)
	}
}

func (p *Pipeline) parkingReport(dataset []model.VehicleRecord, window model.DateWindow) *model.Report {
	sections := make([]model.ParkingSection, 0, len(dataset))

	for _, vehicle := range dataset {
		stops := stopsInWindow(vehicle.Stops, window)

		section := model.ParkingSection{
			VehicleID:    vehicle.ID,
			VehicleLabel: vehicle.Label(),
			Clusters:     []model.ClusterRow{},
		}

		clusters := TopClusters(ClusterStops(stops, p.params.ClusterRadiusMeters), p.params.TopLocations)
		for i, c := range clusters {
			section.Clusters = append(section.Clusters, model.ClusterRow{
				Rank:      i + 1,
				Address:   c.Address,
				Latitude:  c.Latitude,
				Longitude: c.Longitude,
				Duration:  FormatDuration(c.DurationSeconds),
			})
		}

		sections = append(sections, section)
	}

	return &model.Report{
		Kind:      model.ReportParking,
		Window:    window,
		Sections:  sections,
		PageCount: 1,
	}
}

func (p *Pipeline) activityReport(kind model.ReportKind, dataset []model.VehicleRecord, window model.DateWindow, query model.ReportQuery) *model.Report {
	standings := make([]model.VehicleStanding, 0, len(dataset))
	for _, vehicle := range dataset {
		stats := AggregateActivity(vehicle.ID, vehicle.DaysFor(query.DayClass), window)
		if kind == model.ReportIdle {
			stats = idleStats(stats)
		}
		standings = append(standings, model.VehicleStanding{
			VehicleID: vehicle.ID,
			Label:     vehicle.Label(),
			Stats:     stats,
		})
	}

	ranked := RankVehicles(standings)
	page, pageCount := Paginate(ranked, p.params.PageSize, query.Page)

	rows := make([]model.ReportRow, 0, len(page))
	for i, standing := range page {
		row := model.ReportRow{
			Rank:         query.Page*p.params.PageSize + i + 1,
			VehicleID:    standing.VehicleID,
			VehicleLabel: standing.Label,
		}
		if standing.Stats != nil {
			percent := standing.Stats.AvgActivityPercent
			row.HasData = true
			row.Duration = FormatDuration(standing.Stats.TotalSeconds)
			row.DistanceKm = standing.Stats.TotalKm
			row.ActivityPercent = &percent
		}
		rows = append(rows, row)
	}

	return &model.Report{
		Kind:      kind,
		Window:    window,
		DayClass:  query.DayClass,
		Rows:      rows,
		Page:      query.Page,
		PageCount: pageCount,
	}
}

// idleStats converts an activity aggregate into its idle-time view:
// the unused remainder of each matched day and the complementary
// percentage. A nil input stays nil (no data is still no data).
func idleStats(stats *model.VehicleActivityStats) *model.VehicleActivityStats {
	if stats == nil {
		return nil
	}
	idleSeconds := int64(stats.MatchedDays)*86400 - stats.TotalSeconds
	if idleSeconds < 0 {
		idleSeconds = 0
	}
	return &model.VehicleActivityStats{
		VehicleID:          stats.VehicleID,
		TotalSeconds:       idleSeconds,
		TotalKm:            stats.TotalKm,
		AvgActivityPercent: 100 - stats.AvgActivityPercent,
		MatchedDays:        stats.MatchedDays,
	}
}

func stopsInWindow(stops []model.StopEvent, window model.DateWindow) []model.StopEvent {
	filtered := make([]model.StopEvent, 0, len(stops))
	for _, stop := range stops {
		if window.Contains(stop.Day) {
			filtered = append(filtered, stop)
		}
	}
	return filtered
}
