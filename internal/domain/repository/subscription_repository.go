package repository

import (
	"context"

	"courtcast-service/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription lookups
type SubscriptionRepository interface {
	FindAll(ctx context.Context) ([]*entity.Subscription, error)
	FindByLocation(ctx context.Context, location string) ([]*entity.Subscription, error)
}
