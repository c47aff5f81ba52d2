package entity

import "time"

// Region maps a named region to the airports searched when a query side
// names the region instead of a single city
type Region struct {
	ID        uint
	Name      string
	Airports  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
