package utils

// BookingCandidate is the extractor's output for one message. The
// caller supplies the record id and timestamp from the source envelope.
type BookingCandidate struct {
	Platform     string
	Location     string
	BookingSlot  string
	GameDate     string
	GameTime     string
	Sport        string
	CustomerName string
	PaidAmount   string
	Message      string
}

// PlatformExtractor holds the labeled-pattern rules specific to one
// booking platform's mail formatting. Implementations return the raw
// captured value or "" when their patterns do not match; validation
// happens in the shared pipeline.
type PlatformExtractor interface {
	Platform() string
	CustomerName(text string) string
	PaidAmount(text string) string
}

// Constants
const (
	SlotSeparator = " | "
	TimeSeparator = ", "

	forwardScanWindow  = 6
	backwardScanWindow = 3

	maxCustomerNameLen = 40
	minPlausibleAmount = 1
	maxPlausibleAmount = 100000
)
