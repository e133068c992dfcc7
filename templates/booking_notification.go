package templates

import (
	"fmt"

	"courtcast-service/internal/domain/entity"
)

const bookingAlertTemplate = `New booking on %s
Venue: %s
Sport: %s
Date: %s
Time: %s
Booked by: %s
Paid: %s`

// BookingNotification builds the subscriber-facing payload for one
// newly reconciled booking alert
func BookingNotification(alert *entity.BookingAlert) *entity.NotificationPayload {
	title := fmt.Sprintf("%s booking at %s", alert.Sport, alert.Location)
	text := fmt.Sprintf(bookingAlertTemplate,
		alert.Platform,
		alert.Location,
		alert.Sport,
		alert.GameDate,
		alert.GameTime,
		alert.CustomerName,
		alert.PaidAmount,
	)

	return &entity.NotificationPayload{
		AlertID:  alert.ID,
		Title:    title,
		Text:     text,
		Location: alert.Location,
		Platform: alert.Platform,
	}
}
