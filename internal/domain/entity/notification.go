package entity

// NotificationPayload is the message delivered to one subscriber for
// one newly reconciled booking alert.
type NotificationPayload struct {
	AlertID  string `json:"alertId"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Location string `json:"location"`
	Platform string `json:"platform"`
}
