package usecase

import (
	"sort"

	"awardsearch-service/internal/domain/entity"
)

// ValidFlight reports whether a record is usable: a price was found, the
// price is not the no-result sentinel, and the boarding tax resolved
func ValidFlight(f entity.FlightRecord) bool {
	return f.Price != 0 &&
		f.Price != entity.PriceNoResult &&
		f.Tax != nil &&
		f.Tax.Miles != ""
}

// ValidFlights drops invalid records, keeping source order
func ValidFlights(records []entity.FlightRecord) []entity.FlightRecord {
	valid := make([]entity.FlightRecord, 0, len(records))
	for _, r := range records {
		if ValidFlight(r) {
			valid = append(valid, r)
		}
	}
	return valid
}

// RankFlights sorts records ascending by price and truncates to limit
func RankFlights(records []entity.FlightRecord, limit int) []entity.FlightRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Price < records[j].Price
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}
