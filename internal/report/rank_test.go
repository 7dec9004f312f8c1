package report

import (
	"reflect"
	"testing"

	"fleet-report-service/internal/model"
)

func standing(id string, seconds int64) model.VehicleStanding {
	return model.VehicleStanding{
		VehicleID: id,
		Label:     id,
		Stats: &model.VehicleActivityStats{
			VehicleID:    id,
			TotalSeconds: seconds,
		},
	}
}

func noData(id string) model.VehicleStanding {
	return model.VehicleStanding{VehicleID: id, Label: id}
}

func order(standings []model.VehicleStanding) []string {
	ids := make([]string, 0, len(standings))
	for _, s := range standings {
		ids = append(ids, s.VehicleID)
	}
	return ids
}

func TestRankVehiclesDescendingBySeconds(t *testing.T) {
	ranked := RankVehicles([]model.VehicleStanding{
		standing("a", 100),
		standing("b", 300),
		standing("c", 200),
	})

	want := []string{"b", "c", "a"}
	if got := order(ranked); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRankVehiclesNoDataAfterDataInOriginalOrder(t *testing.T) {
	ranked := RankVehicles([]model.VehicleStanding{
		noData("x"),
		standing("a", 100),
		noData("y"),
		standing("b", 300),
		noData("z"),
	})

	want := []string{"b", "a", "x", "y", "z"}
	if got := order(ranked); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRankVehiclesStableOnTies(t *testing.T) {
	ranked := RankVehicles([]model.VehicleStanding{
		standing("a", 100),
		standing("b", 100),
		standing("c", 100),
	})

	want := []string{"a", "b", "c"}
	if got := order(ranked); !reflect.DeepEqual(got, want) {
		t.Fatalf("ties must keep input order, got %v", got)
	}
}

func TestRankVehiclesDoesNotMutateInput(t *testing.T) {
	input := []model.VehicleStanding{
		standing("a", 100),
		standing("b", 300),
	}
	RankVehicles(input)

	if input[0].VehicleID != "a" || input[1].VehicleID != "b" {
		t.Fatalf("input slice was mutated: %v", order(input))
	}
}

func TestPaginateCompleteness(t *testing.T) {
	standings := []model.VehicleStanding{
		standing("a", 700),
		standing("b", 600),
		standing("c", 500),
		standing("d", 400),
		standing("e", 300),
		standing("f", 200),
		standing("g", 100),
	}

	pageSize := 3
	var all []model.VehicleStanding
	_, pageCount := Paginate(standings, pageSize, 0)
	if pageCount != 3 {
		t.Fatalf("expected 3 pages, got %d", pageCount)
	}
	for page := 0; page < pageCount; page++ {
		items, _ := Paginate(standings, pageSize, page)
		all = append(all, items...)
	}

	if !reflect.DeepEqual(order(all), order(standings)) {
		t.Fatalf("concatenated pages differ from full list: %v", order(all))
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	standings := []model.VehicleStanding{standing("a", 1)}

	for _, page := range []int{-1, 1, 99} {
		items, pageCount := Paginate(standings, 5, page)
		if len(items) != 0 {
			t.Fatalf("page %d should be empty, got %d items", page, len(items))
		}
		if pageCount != 1 {
			t.Fatalf("expected pageCount 1, got %d", pageCount)
		}
	}
}

func TestPaginateEmptyList(t *testing.T) {
	items, pageCount := Paginate(nil, 5, 0)
	if len(items) != 0 || pageCount != 0 {
		t.Fatalf("expected empty page and 0 pages, got %d items, %d pages", len(items), pageCount)
	}
}
