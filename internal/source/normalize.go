// Package source normalizes loosely-typed provider payloads into the
// typed telemetry model. All shape tolerance lives here: downstream
// aggregation only ever sees clean entities.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"fleet-report-service/internal/model"
)

// ErrMalformedDataset means the payload does not match the expected
// shape at all. The whole report is blocked; there are no partial
// results for a broken dataset.
var ErrMalformedDataset = errors.New("malformed dataset")

const dayLayout = "2006-01-02"

// looseFloat decodes a JSON number, a quoted number, null, or garbage.
// Anything unparseable becomes 0: telemetry gaps are inactivity, never
// NaN propagated into a sum.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = looseFloat(v)
	return nil
}

type rawStop struct {
	Latitude  *looseFloat `json:"latitud"`
	Longitude *looseFloat `json:"longitud"`
	Duration  looseFloat  `json:"duracion"`
	Address   string      `json:"direccion"`
}

type rawDay struct {
	Date     string     `json:"fecha"`
	Hours    looseFloat `json:"horas_actividad"`
	Distance looseFloat `json:"km_recorridos"`
}

type rawVehicle struct {
	ID        string               `json:"vhc_id"`
	Plate     string               `json:"vhc_placa"`
	Category  string               `json:"vhc_tipo"`
	Stops     map[string][]rawStop `json:"detenciones"`
	Laboral   []rawDay             `json:"dias_laborables"`
	NoLaboral []rawDay             `json:"dias_no_laborables"`
}

// ParseDataset decodes a raw provider payload into vehicle records.
// The top level must be a list of vehicle objects; anything else is a
// malformed dataset. Missing optional sections degrade to "no data".
func ParseDataset(payload []byte) ([]model.VehicleRecord, error) {
	var raw []rawVehicle
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}

	records := make([]model.VehicleRecord, 0, len(raw))
	for _, rv := range raw {
		records = append(records, normalizeVehicle(rv))
	}
	return records, nil
}

func normalizeVehicle(rv rawVehicle) model.VehicleRecord {
	record := model.VehicleRecord{
		ID:            rv.ID,
		Plate:         rv.Plate,
		Category:      rv.Category,
		Stops:         normalizeStops(rv.ID, rv.Stops),
		LaboralDays:   normalizeDays(rv.Laboral),
		NoLaboralDays: normalizeDays(rv.NoLaboral),
	}
	if record.ID == "" {
		record.ID = rv.Plate
	}
	return record
}

// normalizeStops flattens the date-keyed stop map in ascending day
// order so cluster input order is deterministic. Entries under an
// unparseable date key are dropped as unplaceable in any window.
func normalizeStops(vehicleID string, stops map[string][]rawStop) []model.StopEvent {
	if len(stops) == 0 {
		return nil
	}

	keys := make([]string, 0, len(stops))
	for key := range stops {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []model.StopEvent
	for _, key := range keys {
		day, err := time.ParseInLocation(dayLayout, key, time.UTC)
		if err != nil {
			continue
		}
		for _, rs := range stops[key] {
			events = append(events, model.StopEvent{
				VehicleID:       vehicleID,
				Day:             day,
				Latitude:        coordinate(rs.Latitude),
				Longitude:       coordinate(rs.Longitude),
				DurationSeconds: int64(math.Round(float64(rs.Duration))),
				Address:         rs.Address,
			})
		}
	}
	return events
}

func normalizeDays(days []rawDay) []model.DayActivity {
	var out []model.DayActivity
	for _, rd := range days {
		day, err := time.ParseInLocation(dayLayout, strings.TrimSpace(rd.Date), time.UTC)
		if err != nil {
			continue
		}
		out = append(out, model.DayActivity{
			Day:           day,
			ActivityHours: float64(rd.Hours),
			DistanceKm:    float64(rd.Distance),
		})
	}
	return out
}

func coordinate(v *looseFloat) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
