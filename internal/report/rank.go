package report

import (
	"sort"

	"fleet-report-service/internal/model"
)

// DefaultPageSize is the number of vehicles per report page.
const DefaultPageSize = 5

// RankVehicles orders standings by total active seconds descending.
// The sort is stable: ties keep their input order, and vehicles
// without data stay after every vehicle with data, in their original
// relative order.
func RankVehicles(standings []model.VehicleStanding) []model.VehicleStanding {
	ranked := make([]model.VehicleStanding, len(standings))
	copy(ranked, standings)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ranked[i].Stats, ranked[j].Stats
		if si == nil || sj == nil {
			return si != nil && sj == nil
		}
		return si.TotalSeconds > sj.TotalSeconds
	})

	return ranked
}

// Paginate slices a ranked list into the requested page. An
// out-of-range page index yields an empty page, not an error.
func Paginate(standings []model.VehicleStanding, pageSize, pageIndex int) ([]model.VehicleStanding, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageCount := (len(standings) + pageSize - 1) / pageSize

	if pageIndex < 0 || pageIndex >= pageCount {
		return []model.VehicleStanding{}, pageCount
	}

	from := pageIndex * pageSize
	to := from + pageSize
	if to > len(standings) {
		to = len(standings)
	}
	return standings[from:to], pageCount
}
