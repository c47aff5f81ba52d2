package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/infrastructure/config"
	"awardsearch-service/internal/interface/smiles"
	"awardsearch-service/pkg/logger"
)

// One-shot probe against the upstream search API. Useful to verify that the
// configured bearer tokens and api key still work before deploying.
func main() {
	origin := flag.String("origin", "EZE", "origin airport code")
	destination := flag.String("destination", "MAD", "destination airport code")
	date := flag.String("date", time.Now().AddDate(0, 1, 0).Format("2006-01-02"), "departure date (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl := logger.NewLogger()
	defer zl.Sync()

	identity := smiles.NewRandomIdentityProvider(cfg.BearerTokens, cfg.UserAgents)
	client := smiles.NewClient(smiles.ClientOptions{
		SearchURL: cfg.SearchURL,
		TaxURL:    cfg.TaxURL,
		APIKey:    cfg.APIKey,
		Origin:    cfg.EmissionOrigin,
		Timeout:   cfg.FetchTimeout,
	}, identity, nil, zl, nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	params := entity.ParameterSet{
		OriginAirportCode:      *origin,
		DestinationAirportCode: *destination,
		DepartureDate:          *date,
		Adults:                 "1",
		Children:               "0",
		Infants:                "0",
		CabinType:              "all",
		CurrencyCode:           cfg.CurrencyCode,
		ForceCongener:          "true",
		TripType:               smiles.TripTypeOneWay,
		Region:                 cfg.ProgramRegion,
	}

	resp := client.SearchFlights(ctx, params)
	for _, segment := range resp.RequestedFlightSegmentList {
		fmt.Printf("%s %s %s: %d flights\n", *origin, *destination, *date, len(segment.FlightList))
		for _, f := range segment.FlightList {
			for _, fare := range f.FareList {
				if fare.Type == smiles.FareSmilesClub {
					fmt.Printf("  %s %s stops=%d %d miles\n",
						f.Airline.Code, f.Cabin, f.Stops, fare.Miles)
				}
			}
		}
	}
}
