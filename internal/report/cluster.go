package report

import (
	"math"
	"sort"

	"fleet-report-service/internal/geo"
	"fleet-report-service/internal/model"
)

// DefaultClusterRadiusMeters is the merge threshold: two stops within
// this great-circle distance count as the same place.
const DefaultClusterRadiusMeters = 100.0

// ClusterStops groups stop events into proximity clusters. Stops are
// scanned in input order; each one merges into the nearest existing
// cluster within radiusMeters, otherwise it opens a new cluster.
// Merging adds the stop's duration to the cluster and keeps the
// cluster's first-seen coordinate and address. A stop without
// coordinates never matches a distance test and always stands alone.
func ClusterStops(stops []model.StopEvent, radiusMeters float64) []model.ClusterGroup {
	clusters := make([]model.ClusterGroup, 0, len(stops))

	for _, stop := range stops {
		nearest := -1
		nearestDist := math.MaxFloat64

		if stop.HasCoordinates() {
			for i, c := range clusters {
				if !c.HasCoordinates() {
					continue
				}
				d := geo.HaversineMeters(*stop.Latitude, *stop.Longitude, *c.Latitude, *c.Longitude)
				if d <= radiusMeters && d < nearestDist {
					nearest = i
					nearestDist = d
				}
			}
		}

		if nearest >= 0 {
			clusters[nearest].DurationSeconds += stop.DurationSeconds
			continue
		}

		clusters = append(clusters, model.ClusterGroup{
			Latitude:        stop.Latitude,
			Longitude:       stop.Longitude,
			DurationSeconds: stop.DurationSeconds,
			Address:         stop.Address,
		})
	}

	return clusters
}

// TopClusters returns the n longest-duration clusters. The sort is
// stable so equal durations keep their first-seen order.
func TopClusters(clusters []model.ClusterGroup, n int) []model.ClusterGroup {
	sorted := make([]model.ClusterGroup, len(clusters))
	copy(sorted, clusters)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DurationSeconds > sorted[j].DurationSeconds
	})

	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
