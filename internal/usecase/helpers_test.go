package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/pkg/logger"
)

// nopLogger discards everything; the pipeline logs on most paths and
// tests only care about behavior.
type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (n nopLogger) With(keysAndValues ...interface{}) logger.Logger {
	return n
}

func resolvedAlert(id string, ts time.Time) *entity.BookingAlert {
	return &entity.BookingAlert{
		ID:           id,
		Platform:     entity.PlatformHudle,
		Location:     "Andheri",
		BookingSlot:  "06 Feb '26, 7:00 PM - 8:00 PM",
		GameDate:     "06 Feb '26",
		GameTime:     "7:00 PM - 8:00 PM",
		Sport:        "Badminton",
		CustomerName: "Rahul Sharma",
		PaidAmount:   "₹1200",
		Message:      "Hudle Booking Confirmation",
		Timestamp:    ts,
	}
}

func staleAlert(id string, ts time.Time) *entity.BookingAlert {
	a := resolvedAlert(id, ts)
	a.BookingSlot = entity.SlotMissing
	a.GameTime = entity.SlotMissing
	return a
}

type fakeSubscriptionRepo struct {
	subs []*entity.Subscription
	err  error

	findAllCalls        int
	findByLocationCalls int
}

func (f *fakeSubscriptionRepo) FindAll(ctx context.Context) ([]*entity.Subscription, error) {
	f.findAllCalls++
	return f.subs, f.err
}

// FindByLocation matches case-insensitively, like the store's
// lower() comparison.
func (f *fakeSubscriptionRepo) FindByLocation(ctx context.Context, location string) ([]*entity.Subscription, error) {
	f.findByLocationCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Subscription
	for _, sub := range f.subs {
		if strings.EqualFold(sub.Location, location) {
			out = append(out, sub)
		}
	}
	return out, nil
}

// fakePushRepo records deliveries and fails for endpoints listed in
// failing. Safe for the dispatcher's concurrent sends.
type fakePushRepo struct {
	mu        sync.Mutex
	delivered []string
	failing   map[string]error
}

func (f *fakePushRepo) SendNotification(ctx context.Context, sub *entity.Subscription, payload *entity.NotificationPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failing[sub.Endpoint]; ok {
		return err
	}
	f.delivered = append(f.delivered, sub.Endpoint)
	return nil
}

func (f *fakePushRepo) deliveredEndpoints() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.delivered))
	copy(out, f.delivered)
	return out
}

type fakeMailbox struct {
	mu         sync.Mutex
	envelopes  []*entity.EmailEnvelope
	emails     []*entity.Email
	scanErrs   []error
	scanCalls  int
	fetchCalls int
	lookbacks  []int
}

func (f *fakeMailbox) Scan(ctx context.Context, lookbackDays int) ([]*entity.EmailEnvelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanCalls++
	f.lookbacks = append(f.lookbacks, lookbackDays)
	if len(f.scanErrs) > 0 {
		err := f.scanErrs[0]
		f.scanErrs = f.scanErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.envelopes, nil
}

func (f *fakeMailbox) FetchBodies(ctx context.Context, emailIDs []string) ([]*entity.Email, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	want := make(map[string]bool, len(emailIDs))
	for _, id := range emailIDs {
		want[id] = true
	}
	var out []*entity.Email
	for _, email := range f.emails {
		if want[email.EmailID] {
			out = append(out, email)
		}
	}
	return out, nil
}

type fakeAlertRepo struct {
	mu       sync.Mutex
	alerts   []*entity.BookingAlert
	findErr  error
	replaced int
}

func (f *fakeAlertRepo) FindAll(ctx context.Context) ([]*entity.BookingAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]*entity.BookingAlert, len(f.alerts))
	copy(out, f.alerts)
	return out, nil
}

func (f *fakeAlertRepo) ReplaceAll(ctx context.Context, alerts []*entity.BookingAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = alerts
	f.replaced++
	return nil
}

func (f *fakeAlertRepo) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = nil
	return nil
}

func (f *fakeAlertRepo) snapshot() []*entity.BookingAlert {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.BookingAlert, len(f.alerts))
	copy(out, f.alerts)
	return out
}
