package repository

import (
	"context"

	"courtcast-service/internal/domain/entity"
)

// PushRepository defines the interface for delivering one notification
// to one subscriber endpoint. An expired endpoint is reported as
// entity.ErrSubscriptionExpired.
type PushRepository interface {
	SendNotification(ctx context.Context, sub *entity.Subscription, payload *entity.NotificationPayload) error
}
