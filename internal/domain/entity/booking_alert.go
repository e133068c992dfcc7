package entity

import (
	"time"
)

// Platform tags for booking sources. PlatformSystem is reserved for
// booking confirmations sent by the facility's own mail system rather
// than an aggregator platform.
const (
	PlatformHudle     = "Hudle"
	PlatformPlayo     = "Playo"
	PlatformKhelomore = "KheloMore"
	PlatformDistrict  = "District"
	PlatformSystem    = "System"
)

// Sentinel values for fields that could not be resolved from the
// message body. A field holds either a resolved value or one of these,
// never the empty string.
const (
	SlotMissing     = "MISSING"
	DateTBD         = "TBD"
	ValueNA         = "N/A"
	LocationUnknown = "Unknown"
	LocationAdmin   = "Admin"
	SportGeneral    = "General"
)

// BookingAlert represents one booking extracted from a source email
type BookingAlert struct {
	ID           string    `bson:"_id"`
	Platform     string    `bson:"platform"`
	Location     string    `bson:"location"`
	BookingSlot  string    `bson:"bookingSlot"`
	GameDate     string    `bson:"gameDate"`
	GameTime     string    `bson:"gameTime"`
	Sport        string    `bson:"sport"`
	CustomerName string    `bson:"customerName"`
	PaidAmount   string    `bson:"paidAmount"`
	Message      string    `bson:"message"`
	Timestamp    time.Time `bson:"timestamp"`
}

// IsStale reports whether any key field is still a sentinel. Stale
// records are re-offered to the extractor on later cycles so the
// ledger heals itself as parsing improves.
func (a *BookingAlert) IsStale() bool {
	return a.BookingSlot == SlotMissing ||
		a.GameDate == DateTBD ||
		a.Location == LocationUnknown ||
		a.CustomerName == ValueNA ||
		a.PaidAmount == ValueNA
}
