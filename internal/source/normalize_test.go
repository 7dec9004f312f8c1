package source

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"fleet-report-service/internal/model"
)

func TestParseDatasetMalformed(t *testing.T) {
	for _, payload := range []string{
		`{"not": "a list"}`,
		`"just a string"`,
		`42`,
		`{broken json`,
	} {
		if _, err := ParseDataset([]byte(payload)); !errors.Is(err, ErrMalformedDataset) {
			t.Errorf("payload %q: expected ErrMalformedDataset, got %v", payload, err)
		}
	}
}

func TestParseDatasetEmptyList(t *testing.T) {
	records, err := ParseDataset([]byte(`[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestParseDatasetFullVehicle(t *testing.T) {
	payload := []byte(`[{
		"vhc_id": "867530901234567",
		"vhc_placa": "ABC-123",
		"vhc_tipo": "auto",
		"detenciones": {
			"2025-02-02": [
				{"latitud": -12.05, "longitud": -77.04, "duracion": 900, "direccion": "Av. Principal 100"}
			],
			"2025-02-01": [
				{"latitud": -12.06, "longitud": -77.05, "duracion": 300.4, "direccion": "Jr. Union 5"}
			]
		},
		"dias_laborables": [
			{"fecha": "2025-02-03", "horas_actividad": 2.5, "km_recorridos": 14.2}
		],
		"dias_no_laborables": [
			{"fecha": "2025-02-02", "horas_actividad": 1, "km_recorridos": 3}
		]
	}]`)

	records, err := ParseDataset(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	v := records[0]
	if v.ID != "867530901234567" || v.Plate != "ABC-123" || v.Category != "auto" {
		t.Fatalf("unexpected identity: %+v", v)
	}

	if len(v.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(v.Stops))
	}
	// Stops are flattened in ascending day order regardless of map order.
	if !v.Stops[0].Day.Equal(day("2025-02-01")) || !v.Stops[1].Day.Equal(day("2025-02-02")) {
		t.Fatalf("stops not in day order: %v, %v", v.Stops[0].Day, v.Stops[1].Day)
	}
	if v.Stops[0].DurationSeconds != 300 {
		t.Fatalf("duration must round to whole seconds, got %d", v.Stops[0].DurationSeconds)
	}
	if *v.Stops[0].Latitude != -12.06 || v.Stops[0].Address != "Jr. Union 5" {
		t.Fatalf("unexpected first stop: %+v", v.Stops[0])
	}

	wantLaboral := []model.DayActivity{{Day: day("2025-02-03"), ActivityHours: 2.5, DistanceKm: 14.2}}
	if !reflect.DeepEqual(v.LaboralDays, wantLaboral) {
		t.Fatalf("unexpected laboral days: %+v", v.LaboralDays)
	}
	wantNoLaboral := []model.DayActivity{{Day: day("2025-02-02"), ActivityHours: 1, DistanceKm: 3}}
	if !reflect.DeepEqual(v.NoLaboralDays, wantNoLaboral) {
		t.Fatalf("unexpected no-laboral days: %+v", v.NoLaboralDays)
	}
}

func TestParseDatasetCoercesGarbageNumbersToZero(t *testing.T) {
	payload := []byte(`[{
		"vhc_id": "v1",
		"dias_laborables": [
			{"fecha": "2025-02-01", "horas_actividad": "2.5", "km_recorridos": "10"},
			{"fecha": "2025-02-02", "horas_actividad": "n/a", "km_recorridos": null},
			{"fecha": "2025-02-03"}
		]
	}]`)

	records, err := ParseDataset(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := records[0].LaboralDays
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0].ActivityHours != 2.5 || days[0].DistanceKm != 10 {
		t.Fatalf("quoted numbers must parse: %+v", days[0])
	}
	if days[1].ActivityHours != 0 || days[1].DistanceKm != 0 {
		t.Fatalf("garbage and null must coerce to zero: %+v", days[1])
	}
	if days[2].ActivityHours != 0 || days[2].DistanceKm != 0 {
		t.Fatalf("missing fields must coerce to zero: %+v", days[2])
	}
}

func TestParseDatasetMissingSectionsDegradeToNoData(t *testing.T) {
	records, err := ParseDataset([]byte(`[{"vhc_id": "v1"}, {"vhc_placa": "XYZ-999"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records[0].Stops) != 0 || len(records[0].LaboralDays) != 0 || len(records[0].NoLaboralDays) != 0 {
		t.Fatalf("missing sections must mean no data: %+v", records[0])
	}
	// A vehicle without an id falls back to its plate.
	if records[1].ID != "XYZ-999" {
		t.Fatalf("expected plate fallback id, got %q", records[1].ID)
	}
}

func TestParseDatasetMissingCoordinatesStayNil(t *testing.T) {
	payload := []byte(`[{
		"vhc_id": "v1",
		"detenciones": {
			"2025-02-01": [
				{"duracion": 60, "direccion": "somewhere"},
				{"latitud": null, "longitud": null, "duracion": 30}
			]
		}
	}]`)

	records, err := ParseDataset(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stops := records[0].Stops
	if len(stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(stops))
	}
	if stops[0].HasCoordinates() {
		t.Fatalf("absent coordinates must stay nil: %+v", stops[0])
	}
}

func TestParseDatasetDropsUnparseableDateKeys(t *testing.T) {
	payload := []byte(`[{
		"vhc_id": "v1",
		"detenciones": {
			"not-a-date": [{"duracion": 60}],
			"2025-02-01": [{"duracion": 30}]
		},
		"dias_laborables": [
			{"fecha": "bogus", "horas_actividad": 5},
			{"fecha": "2025-02-01", "horas_actividad": 1}
		]
	}]`)

	records, err := ParseDataset(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records[0].Stops) != 1 {
		t.Fatalf("expected 1 stop, got %d", len(records[0].Stops))
	}
	if len(records[0].LaboralDays) != 1 {
		t.Fatalf("expected 1 day, got %d", len(records[0].LaboralDays))
	}
}

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}
