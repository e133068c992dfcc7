package repository

import (
	"context"
	"sync"
	"time"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/internal/domain/repository"
	"courtcast-service/pkg/logger"
)

// CachedAlertRepository is a cache-aside read wrapper around an
// AlertRepository. Reads within ttl of the last load are served from
// memory; writes go through to the inner store and refresh the cache.
// When the inner read fails, a previously cached copy is served as a
// best-effort fallback. The inner store stays the source of truth.
type CachedAlertRepository struct {
	inner  repository.AlertRepository
	ttl    time.Duration
	now    func() time.Time
	logger logger.Logger

	mu       sync.Mutex
	cached   []*entity.BookingAlert
	hasCache bool
	loadedAt time.Time
}

// NewCachedAlertRepository creates a cached wrapper. The clock is
// injectable for tests; pass nil for time.Now.
func NewCachedAlertRepository(inner repository.AlertRepository, ttl time.Duration, now func() time.Time, logger logger.Logger) *CachedAlertRepository {
	if now == nil {
		now = time.Now
	}
	return &CachedAlertRepository{
		inner:  inner,
		ttl:    ttl,
		now:    now,
		logger: logger,
	}
}

// FindAll serves the cached copy while fresh, otherwise reads through
func (r *CachedAlertRepository) FindAll(ctx context.Context) ([]*entity.BookingAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasCache && r.now().Sub(r.loadedAt) < r.ttl {
		return copyAlerts(r.cached), nil
	}

	alerts, err := r.inner.FindAll(ctx)
	if err != nil {
		if r.hasCache {
			r.logger.Warn("Alert store read failed, serving stale cache", "error", err)
			return copyAlerts(r.cached), nil
		}
		return nil, err
	}

	r.cached = alerts
	r.hasCache = true
	r.loadedAt = r.now()
	return copyAlerts(r.cached), nil
}

// ReplaceAll writes through and refreshes the cache
func (r *CachedAlertRepository) ReplaceAll(ctx context.Context, alerts []*entity.BookingAlert) error {
	if err := r.inner.ReplaceAll(ctx, alerts); err != nil {
		return err
	}

	r.mu.Lock()
	r.cached = SortAndTruncate(alerts, MaxRetainedAlerts)
	r.hasCache = true
	r.loadedAt = r.now()
	r.mu.Unlock()
	return nil
}

// Clear empties the inner store and the cache
func (r *CachedAlertRepository) Clear(ctx context.Context) error {
	if err := r.inner.Clear(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	r.cached = nil
	r.hasCache = true
	r.loadedAt = r.now()
	r.mu.Unlock()
	return nil
}

func copyAlerts(alerts []*entity.BookingAlert) []*entity.BookingAlert {
	out := make([]*entity.BookingAlert, len(alerts))
	copy(out, alerts)
	return out
}
