package templates

import (
	"fmt"
	"strconv"
	"strings"

	"awardsearch-service/internal/domain/entity"
)

// NotFoundMessage is the one-line block rendered when a search found no
// valid flights. Kept on a single line so the alert differ reads it as
// "no price".
const NotFoundMessage = "No se encontraron vuelos para esa búsqueda"

// MessageBuilder renders ranked results into the text block handed to the
// chat layer. Prices sit inside *...* emphasis spans; the alert differ
// parses them back out of stored blocks.
type MessageBuilder struct{}

// NewMessageBuilder creates a new message builder
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{}
}

// RenderResult formats a search result for one query
func (b *MessageBuilder) RenderResult(q *entity.SearchQuery, result *entity.FlightResult) string {
	if q.Kind == entity.KindRoundTrip {
		return b.renderRoundTrip(q, result)
	}
	return b.renderOneWay(q, result)
}

func (b *MessageBuilder) renderOneWay(q *entity.SearchQuery, result *entity.FlightResult) string {
	if len(result.Results) == 0 {
		return NotFoundMessage
	}

	var sb strings.Builder
	sb.WriteString(b.title(q))
	sb.WriteString("\n")

	for _, flight := range result.Results {
		label := fmt.Sprintf("%d/%s", flight.DepartureDay, result.DepartureMonth)
		switch q.Kind {
		case entity.KindMultipleDestination:
			label = flight.Destination + " " + label
		case entity.KindMultipleOrigin:
			label = flight.Origin + " " + label
		}
		if q.FixedDay {
			label = flight.Origin + " " + flight.Destination
		}

		sb.WriteString(fmt.Sprintf("[%s]: *%s + %s/%s*%s\n",
			label,
			strconv.FormatInt(flight.Price, 10),
			flight.Tax.Miles,
			flight.Tax.Money,
			flightOutput(flight)))
	}
	return sb.String()
}

func (b *MessageBuilder) renderRoundTrip(q *entity.SearchQuery, result *entity.FlightResult) string {
	if len(result.RoundTrips) == 0 {
		return NotFoundMessage
	}

	var sb strings.Builder
	sb.WriteString(q.Origin + " " + q.Destination + "\n")

	for _, trip := range result.RoundTrips {
		going := trip.DepartureFlight
		coming := trip.ReturnFlight

		var taxMiles, taxMoney float64
		if going.Tax != nil && coming.Tax != nil {
			taxMiles = going.Tax.MilesNumber + coming.Tax.MilesNumber
			taxMoney = going.Tax.MoneyNumber + coming.Tax.MoneyNumber
		}

		sb.WriteString(fmt.Sprintf("[%d/%d - %d/%d]: *%s + %s + %dK/$%dK*\n IDA:%s\n VUELTA:%s\n",
			going.DepartureDate.Day(), int(going.DepartureDate.Month()),
			coming.DepartureDate.Day(), int(coming.DepartureDate.Month()),
			strconv.FormatInt(going.Price, 10),
			strconv.FormatInt(coming.Price, 10),
			int(taxMiles/1000),
			int(taxMoney/1000),
			flightOutput(going),
			flightOutput(coming)))
	}
	return sb.String()
}

func (b *MessageBuilder) title(q *entity.SearchQuery) string {
	switch q.Kind {
	case entity.KindMultipleDestination:
		return q.Origin + " " + q.Region + " " + q.DepartureDate
	case entity.KindMultipleOrigin:
		return q.Region + " " + q.Destination + " " + q.DepartureDate
	default:
		return q.Origin + " " + q.Destination
	}
}

func flightOutput(f entity.FlightRecord) string {
	return fmt.Sprintf(" (%s, %s escalas, %shs, %s asientos)",
		f.Airline, f.Stops, f.Duration, f.Seats)
}
