package usecase

import (
	"sort"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/pkg/utils"
)

// metroAirports maps a metro-area code to the airports it covers, so a
// record departing from a specific airport is still attributed to the city
// the user searched from
var metroAirports = map[string][]string{
	"BUE": {"EZE", "AEP"},
	"RIO": {"GIG", "SDU"},
	"SAO": {"GRU", "CGH", "VCP"},
}

// BelongsToCity reports whether an airport code belongs to a searched city
func BelongsToCity(airport, city string) bool {
	if airport == city {
		return true
	}
	for _, a := range metroAirports[city] {
		if airport == a {
			return true
		}
	}
	return false
}

// MatchRoundTrips pairs outbound and inbound records into trips whose day
// gap lies within [minDays, maxDays] inclusive, sorted ascending by combined
// price with stable ties. Which side a record belongs to is resolved by its
// departure airport against the original query's origin.
func MatchRoundTrips(records []entity.FlightRecord, minDays, maxDays int, origin string) []entity.RoundTripRecord {
	var outbound, inbound []entity.FlightRecord
	for _, r := range records {
		if BelongsToCity(r.Origin, origin) {
			outbound = append(outbound, r)
		} else {
			inbound = append(inbound, r)
		}
	}

	var trips []entity.RoundTripRecord
	for _, going := range outbound {
		for _, coming := range inbound {
			gap := utils.DaysBetween(going.DepartureDate, coming.DepartureDate)
			if gap >= minDays && gap <= maxDays {
				trips = append(trips, entity.RoundTripRecord{
					DepartureFlight: going,
					ReturnFlight:    coming,
				})
			}
		}
	}

	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].CombinedPrice() < trips[j].CombinedPrice()
	})
	return trips
}
