package repository

import (
	"context"

	"courtcast-service/internal/domain/entity"
)

// AlertRepository defines the interface for the booking alert store.
// FindAll returns records newest first. ReplaceAll overwrites the
// whole ledger, enforcing the retention cap and newest-first order.
type AlertRepository interface {
	FindAll(ctx context.Context) ([]*entity.BookingAlert, error)
	ReplaceAll(ctx context.Context, alerts []*entity.BookingAlert) error
	Clear(ctx context.Context) error
}
