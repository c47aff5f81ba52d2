package smiles

// Upstream wire shapes for the award search and boarding tax endpoints.

// FlightListResponse is the top-level search response
type FlightListResponse struct {
	RequestedFlightSegmentList []FlightSegment `json:"requestedFlightSegmentList"`
	ErrorMessage               string          `json:"error,omitempty"`
}

// FlightSegment groups the offers for one requested segment
type FlightSegment struct {
	FlightList []Flight        `json:"flightList"`
	Airports   SegmentAirports `json:"airports"`
}

// SegmentAirports carries the airports the segment was requested for
type SegmentAirports struct {
	DepartureAirportList []Airport `json:"departureAirportList"`
	ArrivalAirportList   []Airport `json:"arrivalAirportList"`
}

// Airport is an airport reference
type Airport struct {
	Code string `json:"code"`
}

// Flight is one flight offer inside a segment
type Flight struct {
	UID            string   `json:"uid"`
	Departure      Endpoint `json:"departure"`
	Arrival        Endpoint `json:"arrival"`
	Stops          int      `json:"stops"`
	Duration       Duration `json:"duration"`
	Airline        Airline  `json:"airline"`
	Cabin          string   `json:"cabin"`
	AvailableSeats int      `json:"availableSeats"`
	FareList       []Fare   `json:"fareList"`
}

// Endpoint is a departure or arrival point
type Endpoint struct {
	Airport Airport `json:"airport"`
	Date    string  `json:"date"`
}

// Duration is the flight duration
type Duration struct {
	Hours int `json:"hours"`
}

// Airline identifies the operating airline
type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Fare is one fare option for a flight
type Fare struct {
	UID   string  `json:"uid"`
	Type  string  `json:"type"`
	Miles int64   `json:"miles"`
	Money float64 `json:"money"`
}

// taxResponse is the boarding tax response
type taxResponse struct {
	Totals struct {
		TotalBoardingTax struct {
			Miles float64 `json:"miles"`
			Money float64 `json:"money"`
		} `json:"totalBoardingTax"`
	} `json:"totals"`
}

// DepartureAirport returns the airport the segment was requested from, or ""
func (r *FlightListResponse) DepartureAirport() string {
	if r == nil || len(r.RequestedFlightSegmentList) == 0 {
		return ""
	}
	airports := r.RequestedFlightSegmentList[0].Airports.DepartureAirportList
	if len(airports) == 0 {
		return ""
	}
	return airports[0].Code
}

// emptyResponse is the sentinel returned when a fetch degrades: shaped like a
// successful search that found nothing, so aggregation needs no failure branch
func emptyResponse() *FlightListResponse {
	return &FlightListResponse{
		RequestedFlightSegmentList: []FlightSegment{{FlightList: []Flight{}}},
	}
}
