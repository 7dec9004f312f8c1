package report

import (
	"math"

	"fleet-report-service/internal/model"
)

// AggregateActivity reduces one vehicle's day-class list to totals
// over the window. Days outside the window contribute nothing. A nil
// result means no day matched, which callers must keep distinct from
// zero activity.
//
// Each day's hours are rounded to whole seconds before summation;
// distance is summed unrounded. The average percentage is the mean of
// per-day hours/24 percentages, not a share of the window total.
func AggregateActivity(vehicleID string, days []model.DayActivity, window model.DateWindow) *model.VehicleActivityStats {
	var (
		totalSeconds int64
		totalKm      float64
		percentSum   float64
		matched      int
	)

	for _, day := range days {
		if !window.Contains(day.Day) {
			continue
		}
		totalSeconds += int64(math.Round(day.ActivityHours * 3600))
		totalKm += day.DistanceKm
		percentSum += day.ActivityHours / 24 * 100
		matched++
	}

	if matched == 0 {
		return nil
	}

	return &model.VehicleActivityStats{
		VehicleID:          vehicleID,
		TotalSeconds:       totalSeconds,
		TotalKm:            totalKm,
		AvgActivityPercent: percentSum / float64(matched),
		MatchedDays:        matched,
	}
}
