package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/pkg/utils"
)

const confirmationBody = "Slot Details\n" +
	"06 Feb '26, 7:00 PM - 8:00 PM\n" +
	"Venue: Andheri\n" +
	"Booked by: Rahul Sharma\n" +
	"Amount Paid: Rs. 1,200\n"

func newTestOrchestrator(mailbox *fakeMailbox, alerts *fakeAlertRepo, push *fakePushRepo, subs []*entity.Subscription) *SyncOrchestrator {
	dispatcher := NewNotificationDispatcher(&fakeSubscriptionRepo{subs: subs}, push, nil, nopLogger{})
	return NewSyncOrchestrator(
		mailbox,
		alerts,
		utils.NewContentExtractor(nil),
		dispatcher,
		nil,
		nopLogger{},
		time.Hour,
		2,
		30,
		time.Millisecond,
	)
}

func envelope(id, subject, from string, ts time.Time) *entity.EmailEnvelope {
	return &entity.EmailEnvelope{EmailID: id, Subject: subject, From: from, ReceivedAt: ts}
}

func email(id, subject, from, body string, ts time.Time) *entity.Email {
	return &entity.Email{EmailID: id, Subject: subject, From: from, Body: body, ReceivedAt: ts}
}

func TestTriggerSync_FullCycle(t *testing.T) {
	ts := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	mailbox := &fakeMailbox{
		envelopes: []*entity.EmailEnvelope{
			envelope("m1", "Hudle Booking Confirmation", "noreply@hudle.in", ts),
			envelope("m2", "Weekly newsletter", "updates@example.com", ts),
		},
		emails: []*entity.Email{
			email("m1", "Hudle Booking Confirmation", "noreply@hudle.in", confirmationBody, ts),
		},
	}
	alerts := &fakeAlertRepo{}
	push := &fakePushRepo{}
	o := newTestOrchestrator(mailbox, alerts, push, []*entity.Subscription{
		subscriber("Andheri", "ep-1"),
	})

	o.TriggerSync(context.Background(), false)

	assert.Equal(t, "updated 1 items", o.Status())

	stored := alerts.snapshot()
	require.Len(t, stored, 1)
	assert.Equal(t, "m1", stored[0].ID)
	assert.Equal(t, "Andheri", stored[0].Location)
	assert.Equal(t, "7:00 PM - 8:00 PM", stored[0].GameTime)
	assert.False(t, stored[0].IsStale())

	assert.Equal(t, []string{"ep-1"}, push.deliveredEndpoints())
}

func TestTriggerSync_ResolvedRecordNotReoffered(t *testing.T) {
	ts := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	mailbox := &fakeMailbox{
		envelopes: []*entity.EmailEnvelope{
			envelope("m1", "Hudle Booking Confirmation", "noreply@hudle.in", ts),
		},
		emails: []*entity.Email{
			email("m1", "Hudle Booking Confirmation", "noreply@hudle.in", confirmationBody, ts),
		},
	}
	alerts := &fakeAlertRepo{alerts: []*entity.BookingAlert{resolvedAlert("m1", ts)}}
	push := &fakePushRepo{}
	o := newTestOrchestrator(mailbox, alerts, push, nil)

	o.TriggerSync(context.Background(), false)

	assert.Equal(t, "updated 0 items", o.Status())
	assert.Equal(t, 0, mailbox.fetchCalls)
	assert.Equal(t, 0, alerts.replaced)
	assert.Empty(t, push.deliveredEndpoints())
}

func TestTriggerSync_StaleRecordHealed(t *testing.T) {
	ts := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	mailbox := &fakeMailbox{
		envelopes: []*entity.EmailEnvelope{
			envelope("m1", "Hudle Booking Confirmation", "noreply@hudle.in", ts),
		},
		emails: []*entity.Email{
			email("m1", "Hudle Booking Confirmation", "noreply@hudle.in", confirmationBody, ts),
		},
	}
	alerts := &fakeAlertRepo{alerts: []*entity.BookingAlert{staleAlert("m1", ts)}}
	push := &fakePushRepo{}
	o := newTestOrchestrator(mailbox, alerts, push, []*entity.Subscription{
		subscriber("Andheri", "ep-1"),
	})

	o.TriggerSync(context.Background(), false)

	assert.Equal(t, "updated 1 items", o.Status())

	stored := alerts.snapshot()
	require.Len(t, stored, 1)
	assert.False(t, stored[0].IsStale())

	// Healing an existing id is not a new alert, so no fan-out
	assert.Empty(t, push.deliveredEndpoints())
}

func TestTriggerSync_RetriesOnceOnConnectionError(t *testing.T) {
	ts := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	mailbox := &fakeMailbox{
		envelopes: []*entity.EmailEnvelope{
			envelope("m1", "Hudle Booking Confirmation", "noreply@hudle.in", ts),
		},
		emails: []*entity.Email{
			email("m1", "Hudle Booking Confirmation", "noreply@hudle.in", confirmationBody, ts),
		},
		scanErrs: []error{&entity.ConnectionError{Err: errors.New("timeout")}, nil},
	}
	alerts := &fakeAlertRepo{}
	o := newTestOrchestrator(mailbox, alerts, &fakePushRepo{}, nil)

	o.TriggerSync(context.Background(), false)

	assert.Equal(t, 2, mailbox.scanCalls)
	assert.Equal(t, "updated 1 items", o.Status())
}

func TestTriggerSync_SecondConnectionFailureReported(t *testing.T) {
	mailbox := &fakeMailbox{
		scanErrs: []error{
			&entity.ConnectionError{Err: errors.New("timeout")},
			&entity.ConnectionError{Err: errors.New("timeout")},
		},
	}
	o := newTestOrchestrator(mailbox, &fakeAlertRepo{}, &fakePushRepo{}, nil)

	o.TriggerSync(context.Background(), false)

	assert.Equal(t, 2, mailbox.scanCalls)
	assert.Contains(t, o.Status(), "failed:")
}

func TestTriggerSync_ConfigurationErrorNotRetried(t *testing.T) {
	mailbox := &fakeMailbox{
		scanErrs: []error{&entity.ConfigurationError{Reason: "missing credentials"}},
	}
	o := newTestOrchestrator(mailbox, &fakeAlertRepo{}, &fakePushRepo{}, nil)

	o.TriggerSync(context.Background(), false)

	assert.Equal(t, 1, mailbox.scanCalls)
	assert.Contains(t, o.Status(), "failed:")
	assert.Contains(t, o.Status(), "missing credentials")
}

func TestTriggerSync_DroppedWhileRunning(t *testing.T) {
	mailbox := &fakeMailbox{}
	o := newTestOrchestrator(mailbox, &fakeAlertRepo{}, &fakePushRepo{}, nil)

	o.running.Store(true)
	o.TriggerSync(context.Background(), false)

	assert.Equal(t, 0, mailbox.scanCalls)
	assert.True(t, o.running.Load())
}

func TestTriggerSync_DeepUsesExtendedLookback(t *testing.T) {
	mailbox := &fakeMailbox{}
	o := newTestOrchestrator(mailbox, &fakeAlertRepo{}, &fakePushRepo{}, nil)

	o.TriggerSync(context.Background(), true)
	o.TriggerSync(context.Background(), false)

	require.Len(t, mailbox.lookbacks, 2)
	assert.Equal(t, 30, mailbox.lookbacks[0])
	assert.Equal(t, 2, mailbox.lookbacks[1])
}

func TestTriggerSync_HistoryReadFailurePreservesLedger(t *testing.T) {
	ts := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	mailbox := &fakeMailbox{
		envelopes: []*entity.EmailEnvelope{
			envelope("m1", "Hudle Booking Confirmation", "noreply@hudle.in", ts),
			envelope("m2", "Hudle Booking Confirmation", "noreply@hudle.in", ts.Add(time.Hour)),
		},
		emails: []*entity.Email{
			email("m1", "Hudle Booking Confirmation", "noreply@hudle.in", confirmationBody, ts),
			email("m2", "Hudle Booking Confirmation", "noreply@hudle.in", confirmationBody, ts.Add(time.Hour)),
		},
	}

	// Fifty resolved records persisted; the read path is down
	history := make([]*entity.BookingAlert, 0, 50)
	for i := 0; i < 50; i++ {
		history = append(history, resolvedAlert(fmt.Sprintf("h%02d", i), ts.Add(-time.Duration(i)*time.Minute)))
	}
	alerts := &fakeAlertRepo{alerts: history, findErr: errors.New("store down")}
	push := &fakePushRepo{}
	o := newTestOrchestrator(mailbox, alerts, push, []*entity.Subscription{
		subscriber("Andheri", "ep-1"),
	})

	o.TriggerSync(context.Background(), false)

	// The cycle reports failure without writing or notifying: with the
	// ledger unreadable, a write would wipe every record outside the
	// batch and every persisted id would look new again
	assert.Contains(t, o.Status(), "failed:")
	assert.Equal(t, 0, alerts.replaced)
	assert.Len(t, alerts.snapshot(), 50)
	assert.Empty(t, push.deliveredEndpoints())
	assert.Equal(t, 0, mailbox.fetchCalls)
}
