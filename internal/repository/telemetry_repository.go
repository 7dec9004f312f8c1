package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleet-report-service/internal/model"
)

type TelemetryRepository struct {
	db *gorm.DB
}

func NewTelemetryRepository(db *gorm.DB) *TelemetryRepository {
	return &TelemetryRepository{db: db}
}

// ReplaceFleet swaps the stored snapshot for a freshly normalized one
// in a single transaction. Reports always see either the old snapshot
// or the new one, never a mix.
func (r *TelemetryRepository) ReplaceFleet(ctx context.Context, records []model.VehicleRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"stop_events", "day_activities", "vehicles"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		for _, record := range records {
			if err := tx.Exec(
				"INSERT INTO vehicles (id, plate, category) VALUES (?, ?, ?)",
				record.ID, record.Plate, record.Category,
			).Error; err != nil {
				return err
			}

			for _, stop := range record.Stops {
				if err := tx.Exec(
					`INSERT INTO stop_events (vehicle_id, stop_day, latitude, longitude, duration_seconds, address)
					 VALUES (?, ?, ?, ?, ?, ?)`,
					record.ID, stop.Day, stop.Latitude, stop.Longitude, stop.DurationSeconds, stop.Address,
				).Error; err != nil {
					return err
				}
			}

			if err := insertDays(tx, record.ID, model.DayClassLaboral, record.LaboralDays); err != nil {
				return err
			}
			if err := insertDays(tx, record.ID, model.DayClassNoLaboral, record.NoLaboralDays); err != nil {
				return err
			}
		}

		return nil
	})
}

func insertDays(tx *gorm.DB, vehicleID string, class model.DayClass, days []model.DayActivity) error {
	for _, day := range days {
		if err := tx.Exec(
			`INSERT INTO day_activities (vehicle_id, day, day_class, activity_hours, distance_km)
			 VALUES (?, ?, ?, ?, ?)`,
			vehicleID, day.Day, string(class), day.ActivityHours, day.DistanceKm,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

// FleetSnapshot loads the stored fleet as a private dataset copy for
// one report run. Ordering is fixed (vehicle id, then day, then row
// id) so pipeline output is deterministic.
func (r *TelemetryRepository) FleetSnapshot(ctx context.Context, category string) ([]model.VehicleRecord, error) {
	type vehicleRow struct {
		ID       string
		Plate    string
		Category string
	}
	var vehicles []vehicleRow
	if err := r.db.WithContext(ctx).
		Raw(`SELECT id, plate, category FROM vehicles
		     WHERE ? = '' OR category = ?
		     ORDER BY id`, category, category).
		Scan(&vehicles).Error; err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return []model.VehicleRecord{}, nil
	}

	records := make([]model.VehicleRecord, 0, len(vehicles))
	index := make(map[string]int, len(vehicles))
	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		index[v.ID] = len(records)
		ids = append(ids, v.ID)
		records = append(records, model.VehicleRecord{
			ID:       v.ID,
			Plate:    v.Plate,
			Category: v.Category,
		})
	}

	type stopRow struct {
		VehicleID       string
		StopDay         time.Time
		Latitude        *float64
		Longitude       *float64
		DurationSeconds int64
		Address         string
	}
	var stops []stopRow
	if err := r.db.WithContext(ctx).
		Raw(`SELECT vehicle_id, stop_day, latitude, longitude, duration_seconds, address
		     FROM stop_events
		     WHERE vehicle_id IN ?
		     ORDER BY vehicle_id, stop_day, id`, ids).
		Scan(&stops).Error; err != nil {
		return nil, err
	}
	for _, s := range stops {
		i, ok := index[s.VehicleID]
		if !ok {
			continue
		}
		records[i].Stops = append(records[i].Stops, model.StopEvent{
			VehicleID:       s.VehicleID,
			Day:             model.Day(s.StopDay),
			Latitude:        s.Latitude,
			Longitude:       s.Longitude,
			DurationSeconds: s.DurationSeconds,
			Address:         s.Address,
		})
	}

	type dayRow struct {
		VehicleID     string
		Day           time.Time
		DayClass      string
		ActivityHours float64
		DistanceKm    float64
	}
	var days []dayRow
	if err := r.db.WithContext(ctx).
		Raw(`SELECT vehicle_id, day, day_class, activity_hours, distance_km
		     FROM day_activities
		     WHERE vehicle_id IN ?
		     ORDER BY vehicle_id, day, id`, ids).
		Scan(&days).Error; err != nil {
		return nil, err
	}
	for _, d := range days {
		i, ok := index[d.VehicleID]
		if !ok {
			continue
		}
		activity := model.DayActivity{
			Day:           model.Day(d.Day),
			ActivityHours: d.ActivityHours,
			DistanceKm:    d.DistanceKm,
		}
		if model.DayClass(d.DayClass) == model.DayClassNoLaboral {
			records[i].NoLaboralDays = append(records[i].NoLaboralDays, activity)
		} else {
			records[i].LaboralDays = append(records[i].LaboralDays, activity)
		}
	}

	return records, nil
}
