package report

import (
	"math"
	"testing"
	"time"

	"fleet-report-service/internal/model"
)

func timeParseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

func activity(day string, hours, km float64) model.DayActivity {
	d, err := timeParseDay(day)
	if err != nil {
		panic(err)
	}
	return model.DayActivity{Day: d, ActivityHours: hours, DistanceKm: km}
}

func window(start, end string) model.DateWindow {
	s, err := timeParseDay(start)
	if err != nil {
		panic(err)
	}
	e, err := timeParseDay(end)
	if err != nil {
		panic(err)
	}
	return model.DateWindow{Start: s, End: e}
}

func TestAggregateActivitySingleDay(t *testing.T) {
	days := []model.DayActivity{activity("2025-02-01", 2, 10)}

	stats := AggregateActivity("v1", days, window("2025-02-01", "2025-02-01"))
	if stats == nil {
		t.Fatal("expected stats, got nil")
	}
	if stats.TotalSeconds != 7200 {
		t.Fatalf("expected 7200 seconds, got %d", stats.TotalSeconds)
	}
	if stats.TotalKm != 10 {
		t.Fatalf("expected 10 km, got %v", stats.TotalKm)
	}
	if math.Abs(stats.AvgActivityPercent-8.333333333333332) > 1e-9 {
		t.Fatalf("expected ~8.33%%, got %v", stats.AvgActivityPercent)
	}
	if stats.MatchedDays != 1 {
		t.Fatalf("expected 1 matched day, got %d", stats.MatchedDays)
	}
}

func TestAggregateActivityEmptyWindowIsAbsence(t *testing.T) {
	days := []model.DayActivity{activity("2025-02-01", 2, 10)}

	if stats := AggregateActivity("v1", days, window("2025-03-01", "2025-03-05")); stats != nil {
		t.Fatalf("expected nil for no data in window, got %+v", stats)
	}
	if stats := AggregateActivity("v1", nil, window("2025-03-01", "2025-03-05")); stats != nil {
		t.Fatalf("expected nil for empty day list, got %+v", stats)
	}
}

func TestAggregateActivityWindowBoundsInclusive(t *testing.T) {
	days := []model.DayActivity{
		activity("2025-01-31", 1, 1), // day before start
		activity("2025-02-01", 2, 2), // start boundary
		activity("2025-02-03", 3, 3),
		activity("2025-02-05", 4, 4), // end boundary
		activity("2025-02-06", 5, 5), // day after end
	}

	stats := AggregateActivity("v1", days, window("2025-02-01", "2025-02-05"))
	if stats == nil {
		t.Fatal("expected stats, got nil")
	}
	if stats.MatchedDays != 3 {
		t.Fatalf("expected 3 matched days, got %d", stats.MatchedDays)
	}
	if stats.TotalSeconds != (2+3+4)*3600 {
		t.Fatalf("days outside the window leaked into the total: %d", stats.TotalSeconds)
	}
	if stats.TotalKm != 9 {
		t.Fatalf("expected 9 km, got %v", stats.TotalKm)
	}
}

func TestAggregateActivityRoundsPerDayBeforeSumming(t *testing.T) {
	// 0.0001 h = 0.36 s, which rounds to 0 per day. Summing first and
	// rounding once would give 1 s for two days.
	days := []model.DayActivity{
		activity("2025-02-01", 0.0001, 0),
		activity("2025-02-02", 0.0001, 0),
	}

	stats := AggregateActivity("v1", days, window("2025-02-01", "2025-02-02"))
	if stats == nil {
		t.Fatal("expected stats, got nil")
	}
	if stats.TotalSeconds != 0 {
		t.Fatalf("per-day rounding must happen before summation, got %d", stats.TotalSeconds)
	}
}

func TestAggregateActivityPercentDivisorIsAlways24(t *testing.T) {
	days := []model.DayActivity{
		activity("2025-02-01", 12, 0),
		activity("2025-02-02", 6, 0),
	}

	stats := AggregateActivity("v1", days, window("2025-02-01", "2025-02-05"))
	if stats == nil {
		t.Fatal("expected stats, got nil")
	}
	// Mean of per-day percentages: (50 + 25) / 2.
	if math.Abs(stats.AvgActivityPercent-37.5) > 1e-9 {
		t.Fatalf("expected 37.5%%, got %v", stats.AvgActivityPercent)
	}
}

func TestAggregateActivityZeroHoursIsDataNotAbsence(t *testing.T) {
	days := []model.DayActivity{activity("2025-02-01", 0, 0)}

	stats := AggregateActivity("v1", days, window("2025-02-01", "2025-02-01"))
	if stats == nil {
		t.Fatal("zero activity in window must produce stats, not absence")
	}
	if stats.TotalSeconds != 0 || stats.AvgActivityPercent != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}
