package entity

import "time"

// Preferences holds per-user search defaults
type Preferences struct {
	ID             string    `bson:"_id,omitempty"`
	UserID         string    `bson:"userId"`
	MaxResults     int       `bson:"maxResults"`
	SmilesAndMoney bool      `bson:"smilesAndMoney"`
	BrasilNonGol   *bool     `bson:"brasilNonGol,omitempty"`
	Airlines       []string  `bson:"airlines,omitempty"`
	MaxStops       string    `bson:"maxStops,omitempty"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}
