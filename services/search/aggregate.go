// File: services/search/aggregate.go
package search

import (
	"sort"

	"farewise/models"
)

// maxAggregatedFlights caps how many options one search presents.
const maxAggregatedFlights = 50

// Aggregate merges flight options from every provider into one list ordered
// by cheapest total fare, then duration, then departure time. The ordering
// is total, so equal inputs always aggregate identically.
func Aggregate(batches [][]models.FlightOption) []models.FlightOption {
	var merged []models.FlightOption
	for _, batch := range batches {
		merged = append(merged, batch...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		li, iok := merged[i].LowestTotal()
		lj, jok := merged[j].LowestTotal()
		switch {
		case iok != jok:
			// Flights without any fare sink to the bottom.
			return iok
		case iok && !li.Equal(lj):
			return li.LessThan(lj)
		}
		if merged[i].DurationMinutes != merged[j].DurationMinutes {
			return merged[i].DurationMinutes < merged[j].DurationMinutes
		}
		return merged[i].DepartureAt.Before(merged[j].DepartureAt)
	})

	if len(merged) > maxAggregatedFlights {
		merged = merged[:maxAggregatedFlights]
	}
	return merged
}
