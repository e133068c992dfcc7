package usecase

import (
	"context"
	"errors"
	"sync"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/internal/domain/repository"
	"courtcast-service/pkg/logger"
	"courtcast-service/pkg/metrics"
	"courtcast-service/templates"
)

// NotificationDispatcher fans out newly reconciled alerts to the
// subscribers registered for each alert's location.
type NotificationDispatcher struct {
	subscriptionRepo repository.SubscriptionRepository
	pushRepo         repository.PushRepository
	metrics          *metrics.Metrics
	logger           logger.Logger
}

// NewNotificationDispatcher creates a new dispatcher
func NewNotificationDispatcher(
	subscriptionRepo repository.SubscriptionRepository,
	pushRepo repository.PushRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		subscriptionRepo: subscriptionRepo,
		pushRepo:         pushRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// DispatchNew delivers one payload per new alert to every matching
// subscriber. Deliveries are independent: a failed or expired endpoint
// is logged and does not affect the others.
func (d *NotificationDispatcher) DispatchNew(ctx context.Context, alerts []*entity.BookingAlert, newIDs []string) {
	if len(newIDs) == 0 {
		return
	}

	byID := make(map[string]*entity.BookingAlert, len(alerts))
	for _, alert := range alerts {
		byID[alert.ID] = alert
	}

	for _, id := range newIDs {
		alert := byID[id]
		if alert == nil {
			continue
		}

		targets, err := d.subscribersFor(ctx, alert.Location)
		if err != nil {
			d.logger.Error("Failed to load subscribers, skipping alert",
				"alertID", alert.ID,
				"location", alert.Location,
				"error", err)
			if d.metrics != nil {
				d.metrics.ErrorsCount.WithLabelValues("subscriptions").Inc()
			}
			continue
		}
		if len(targets) == 0 {
			continue
		}

		payload := templates.BookingNotification(alert)
		d.logger.Info("Dispatching alert",
			"alertID", alert.ID,
			"location", alert.Location,
			"subscribers", len(targets))

		var wg sync.WaitGroup
		for _, sub := range targets {
			wg.Add(1)
			go func(sub *entity.Subscription) {
				defer wg.Done()
				d.deliver(ctx, sub, payload)
			}(sub)
		}
		wg.Wait()
	}
}

// subscribersFor resolves the audience for one alert. Alerts with a
// generic location broadcast to every subscriber; otherwise the
// store's location lookup applies.
func (d *NotificationDispatcher) subscribersFor(ctx context.Context, location string) ([]*entity.Subscription, error) {
	if location == entity.LocationUnknown || location == entity.LocationAdmin {
		return d.subscriptionRepo.FindAll(ctx)
	}
	return d.subscriptionRepo.FindByLocation(ctx, location)
}

func (d *NotificationDispatcher) deliver(ctx context.Context, sub *entity.Subscription, payload *entity.NotificationPayload) {
	if err := d.pushRepo.SendNotification(ctx, sub, payload); err != nil {
		if errors.Is(err, entity.ErrSubscriptionExpired) {
			d.logger.Warn("Subscription expired", "endpoint", sub.Endpoint, "location", sub.Location)
		} else {
			d.logger.Error("Failed to deliver notification", "endpoint", sub.Endpoint, "error", err)
		}
		if d.metrics != nil {
			d.metrics.ErrorsCount.WithLabelValues("notify").Inc()
		}
		return
	}
	if d.metrics != nil {
		d.metrics.NotificationsSent.Inc()
	}
}
