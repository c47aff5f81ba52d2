package entity

import "time"

// FlightSearch is one completed interactive search, kept as history
type FlightSearch struct {
	ID          string    `bson:"_id,omitempty"`
	UserID      string    `bson:"userId"`
	Source      string    `bson:"source"`
	Origin      string    `bson:"origin"`
	Destination string    `bson:"destination"`
	Year        string    `bson:"year"`
	Month       string    `bson:"month"`
	BestPrice   int64     `bson:"bestPrice"`
	SearchedAt  time.Time `bson:"searchedAt"`
}
