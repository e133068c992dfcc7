package entity

import (
	"time"
)

// EmailEnvelope is the header-only view of a message returned by the
// scan phase. Bodies are fetched later, batched, only for messages
// that survive classification.
type EmailEnvelope struct {
	EmailID    string
	Subject    string
	From       string
	ReceivedAt time.Time
}

// Email is a fully fetched message
type Email struct {
	EmailID    string
	Subject    string
	From       string
	Body       string
	HTMLBody   string
	ReceivedAt time.Time
}

// PreferredBody returns the HTML body when present, else plain text
func (e *Email) PreferredBody() string {
	if e.HTMLBody != "" {
		return e.HTMLBody
	}
	return e.Body
}
