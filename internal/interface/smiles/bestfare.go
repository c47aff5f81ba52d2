package smiles

import (
	"strconv"
	"strings"

	"awardsearch-service/internal/domain/entity"
)

// Fare program tiers recognized in the upstream fare list
const (
	FareSmilesClub      = "SMILES_CLUB"
	FareSmilesMoneyClub = "SMILES_MONEY_CLUB"
)

// bestFare scans a segment's offers and returns the flight holding the
// cheapest fare of the requested tier, honoring the user's cabin, airline
// and stop filters. A nil flight means no offer survived the filters; the
// sentinel price makes the resulting record fail validation downstream.
func bestFare(segment FlightSegment, prefs *entity.Preferences, cabinType, fareType string) (flight *Flight, price int64, money float64, fareUID string) {
	price = entity.PriceNoResult

	for i := range segment.FlightList {
		f := &segment.FlightList[i]
		if !cabinMatches(f.Cabin, cabinType) {
			continue
		}
		if !airlineAllowed(f.Airline.Name, prefs) {
			continue
		}
		if !stopsAllowed(f.Stops, prefs) {
			continue
		}
		for _, fare := range f.FareList {
			if fare.Type != fareType || fare.Miles <= 0 {
				continue
			}
			if fare.Miles < price {
				flight = f
				price = fare.Miles
				money = fare.Money
				fareUID = fare.UID
			}
		}
	}

	return flight, price, money, fareUID
}

func cabinMatches(cabin, wanted string) bool {
	if wanted == "" || strings.EqualFold(wanted, "all") {
		return true
	}
	return strings.EqualFold(cabin, wanted)
}

func airlineAllowed(airline string, prefs *entity.Preferences) bool {
	if prefs == nil || len(prefs.Airlines) == 0 {
		return true
	}
	for _, allowed := range prefs.Airlines {
		if strings.EqualFold(airline, allowed) {
			return true
		}
	}
	return false
}

func stopsAllowed(stops int, prefs *entity.Preferences) bool {
	if prefs == nil || prefs.MaxStops == "" {
		return true
	}
	max, err := strconv.Atoi(prefs.MaxStops)
	if err != nil {
		return true
	}
	return stops <= max
}
