package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		plate TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS stop_events (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id TEXT NOT NULL REFERENCES vehicles (id) ON DELETE CASCADE,
		stop_day DATE NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		duration_seconds BIGINT NOT NULL DEFAULT 0,
		address TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS day_activities (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id TEXT NOT NULL REFERENCES vehicles (id) ON DELETE CASCADE,
		day DATE NOT NULL,
		day_class TEXT NOT NULL,
		activity_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		distance_km DOUBLE PRECISION NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_stop_events_vehicle_day ON stop_events (vehicle_id, stop_day);`,
	`CREATE INDEX IF NOT EXISTS idx_day_activities_vehicle_day ON day_activities (vehicle_id, day);`,
	`CREATE INDEX IF NOT EXISTS idx_day_activities_class ON day_activities (day_class);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_category ON vehicles (category);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
