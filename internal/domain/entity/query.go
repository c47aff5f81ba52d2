package entity

// QueryKind identifies which expansion strategy a search query needs
type QueryKind string

const (
	KindSingle              QueryKind = "single"
	KindMultipleDestination QueryKind = "multiple_destination"
	KindMultipleOrigin      QueryKind = "multiple_origin"
	KindRoundTrip           QueryKind = "round_trip"
)

// SearchQuery is one logical user search before expansion
type SearchQuery struct {
	Kind          QueryKind
	Origin        string
	Origins       []string // multiple-origin kind
	Destination   string
	Destinations  []string // multiple-destination kind
	DepartureDate string   // "YYYY-MM" for monthly kinds, "YYYY-MM-DD" for fixed-day and round trip
	ReturnDate    string   // round trip only, "YYYY-MM-DD"
	StartDay      int      // optional explicit day range inside the month, 0 = unset
	EndDay        int
	FixedDay      bool // scan many cities on one exact date, no day expansion
	MinDays       int  // round trip length bounds, inclusive
	MaxDays       int
	Adults        string
	AdultsComing  string // round trip return leg
	CabinType     string
	CabinComing   string // round trip return leg
	Region        string // region name when one side expanded from a region
	UserID        string
	ChatID        int64
}

// ParameterSet is one concrete upstream search request. Immutable once built.
type ParameterSet struct {
	OriginAirportCode      string
	DestinationAirportCode string
	DepartureDate          string // ISO day
	Adults                 string
	Children               string
	Infants                string
	CabinType              string
	CurrencyCode           string
	TripType               string
	ForceCongener          string
	Region                 string
}
