package entity

import (
	"math"
	"time"
)

// PriceNoResult is the sentinel price meaning "no usable fare found" for a
// segment. Distinct from a legitimate zero-cost offer.
const PriceNoResult int64 = math.MaxInt64

// TaxQuote is the boarding tax for one flight, in miles and money
type TaxQuote struct {
	Miles       string  `bson:"miles"`
	MilesNumber float64 `bson:"milesNumber"`
	Money       string  `bson:"money"`
	MoneyNumber float64 `bson:"moneyNumber"`
}

// FlightRecord is a normalized single flight offer
type FlightRecord struct {
	Origin        string    `bson:"origin"`
	Destination   string    `bson:"destination"`
	Price         int64     `bson:"price"`
	Money         float64   `bson:"money"`
	DepartureDate time.Time `bson:"departureDate"`
	DepartureDay  int       `bson:"departureDay"`
	Stops         string    `bson:"stops"`
	Duration      string    `bson:"duration"`
	Airline       string    `bson:"airline"`
	Seats         string    `bson:"seats"`
	Tax           *TaxQuote `bson:"tax,omitempty"`
}

// RoundTripRecord pairs one outbound and one inbound flight
type RoundTripRecord struct {
	DepartureFlight FlightRecord
	ReturnFlight    FlightRecord
}

// CombinedPrice is the summed miles price of both legs
func (r RoundTripRecord) CombinedPrice() int64 {
	return r.DepartureFlight.Price + r.ReturnFlight.Price
}

// TripDays is the gap in calendar days between the two departures, ignoring
// the time of day
func (r RoundTripRecord) TripDays() int {
	going := r.DepartureFlight.DepartureDate
	coming := r.ReturnFlight.DepartureDate
	going = time.Date(going.Year(), going.Month(), going.Day(), 0, 0, 0, 0, going.Location())
	coming = time.Date(coming.Year(), coming.Month(), coming.Day(), 0, 0, 0, 0, coming.Location())
	return int(coming.Sub(going).Hours() / 24)
}

// FlightResult is what a search run hands to the presentation layer
type FlightResult struct {
	Results        []FlightRecord
	RoundTrips     []RoundTripRecord
	DepartureMonth string
}
