package entity

import (
	"time"
)

// Subscription ties a subscriber's push endpoint to a facility
// location. Alerts whose location could not be resolved are delivered
// to every subscriber regardless of this field.
type Subscription struct {
	ID        uint
	Location  string
	Endpoint  string
	Label     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
