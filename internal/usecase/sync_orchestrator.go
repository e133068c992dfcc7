package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/internal/domain/repository"
	"courtcast-service/pkg/logger"
	"courtcast-service/pkg/metrics"
	"courtcast-service/pkg/utils"
)

// User-visible sync statuses
const (
	StatusIdle     = "idle"
	StatusRunning  = "in progress"
	StatusRetrying = "retrying"
)

// SyncOrchestrator drives the scan → classify → extract → reconcile →
// notify cycle. At most one cycle runs at a time; overlapping triggers
// are dropped. A transient mailbox failure is retried exactly once
// after a fixed delay; configuration failures report immediately.
type SyncOrchestrator struct {
	mailbox    repository.MailboxScanner
	alertRepo  repository.AlertRepository
	extractor  *utils.ContentExtractor
	dispatcher *NotificationDispatcher
	metrics    *metrics.Metrics
	logger     logger.Logger

	syncInterval     time.Duration
	lookbackDays     int
	deepLookbackDays int
	retryDelay       time.Duration

	running atomic.Bool

	mu     sync.Mutex
	status string
}

// NewSyncOrchestrator creates a new sync orchestrator
func NewSyncOrchestrator(
	mailbox repository.MailboxScanner,
	alertRepo repository.AlertRepository,
	extractor *utils.ContentExtractor,
	dispatcher *NotificationDispatcher,
	metrics *metrics.Metrics,
	logger logger.Logger,
	syncInterval time.Duration,
	lookbackDays int,
	deepLookbackDays int,
	retryDelay time.Duration,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		mailbox:          mailbox,
		alertRepo:        alertRepo,
		extractor:        extractor,
		dispatcher:       dispatcher,
		metrics:          metrics,
		logger:           logger,
		syncInterval:     syncInterval,
		lookbackDays:     lookbackDays,
		deepLookbackDays: deepLookbackDays,
		retryDelay:       retryDelay,
		status:           StatusIdle,
	}
}

// Start runs the timer-driven sync loop until the context is cancelled
func (o *SyncOrchestrator) Start(ctx context.Context) {
	// Initial pass on startup
	o.TriggerSync(ctx, false)

	ticker := time.NewTicker(o.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("Sync loop stopped")
			return
		case <-ticker.C:
			o.TriggerSync(ctx, false)
		}
	}
}

// Status returns the current user-visible status string
func (o *SyncOrchestrator) Status() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

func (o *SyncOrchestrator) setStatus(s string) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()
}

// TriggerSync attempts to run one sync cycle. If a cycle is already
// running the trigger is dropped. A deep trigger uses the extended
// lookback but respects the same reentrancy guard.
func (o *SyncOrchestrator) TriggerSync(ctx context.Context, deep bool) {
	if !o.running.CompareAndSwap(false, true) {
		o.logger.Info("Sync already running, trigger dropped", "deep", deep)
		return
	}
	defer o.running.Store(false)

	start := time.Now()
	o.setStatus(StatusRunning)

	updated, err := o.runCycle(ctx, deep)
	if err != nil && entity.IsConnectionError(err) {
		o.logger.Warn("Transient mailbox failure, retrying once",
			"error", err,
			"delay", o.retryDelay)
		o.setStatus(StatusRetrying)
		select {
		case <-ctx.Done():
			o.setStatus("failed: " + ctx.Err().Error())
			return
		case <-time.After(o.retryDelay):
		}
		o.setStatus(StatusRunning)
		updated, err = o.runCycle(ctx, deep)
	}

	if err != nil {
		if entity.IsConfigurationError(err) {
			o.logger.Error("Sync cycle failed, mailbox misconfigured", "error", err)
		} else {
			o.logger.Error("Sync cycle failed", "deep", deep, "error", err)
		}
		if o.metrics != nil {
			o.metrics.ErrorsCount.WithLabelValues("sync").Inc()
		}
		o.setStatus("failed: " + err.Error())
		return
	}

	if o.metrics != nil {
		o.metrics.SyncCycles.Inc()
		o.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}
	o.setStatus(fmt.Sprintf("updated %d items", updated))
	o.logger.Info("Sync cycle completed", "deep", deep, "updated", updated)
}

// runCycle performs one full pipeline pass. History is read once at
// cycle start and the merged ledger written once at cycle end.
func (o *SyncOrchestrator) runCycle(ctx context.Context, deep bool) (int, error) {
	lookback := o.lookbackDays
	if deep {
		lookback = o.deepLookbackDays
	}

	history, err := o.alertRepo.FindAll(ctx)
	if err != nil {
		// With the ledger state unknown, a ReplaceAll here would wipe
		// every record outside the current batch and every persisted id
		// would look new again. Skip the whole cycle instead.
		if o.metrics != nil {
			o.metrics.ErrorsCount.WithLabelValues("store").Inc()
		}
		return 0, fmt.Errorf("failed to read alert history: %w", err)
	}
	existing := make(map[string]*entity.BookingAlert, len(history))
	for _, alert := range history {
		existing[alert.ID] = alert
	}

	envelopes, err := o.mailbox.Scan(ctx, lookback)
	if err != nil {
		return 0, err
	}
	if o.metrics != nil {
		o.metrics.MessagesScanned.Add(float64(len(envelopes)))
	}

	type candidate struct {
		envelope *entity.EmailEnvelope
		platform string
	}
	var wanted []candidate
	var fetchIDs []string
	for _, env := range envelopes {
		platform, ok := ClassifyPlatform(env.Subject, env.From)
		if !ok {
			continue
		}
		// Resolved records are never re-offered; only stale ids heal
		if prev, seen := existing[env.EmailID]; seen && !prev.IsStale() {
			continue
		}
		wanted = append(wanted, candidate{envelope: env, platform: platform})
		fetchIDs = append(fetchIDs, env.EmailID)
	}

	if len(wanted) == 0 {
		o.logger.Debug("No new or stale messages to process")
		return 0, nil
	}

	emails, err := o.mailbox.FetchBodies(ctx, fetchIDs)
	if err != nil {
		return 0, err
	}
	byID := make(map[string]*entity.Email, len(emails))
	for _, email := range emails {
		byID[email.EmailID] = email
	}

	var batch []*entity.BookingAlert
	for _, c := range wanted {
		email := byID[c.envelope.EmailID]
		if email == nil {
			continue
		}
		alert, err := o.extractAlert(c.platform, email)
		if err != nil {
			o.logger.Error("Extraction failed, skipping message",
				"emailID", c.envelope.EmailID,
				"platform", c.platform,
				"error", err)
			if o.metrics != nil {
				o.metrics.ErrorsCount.WithLabelValues("extract").Inc()
			}
			continue
		}
		batch = append(batch, alert)
	}

	result := Reconcile(history, batch)

	if len(batch) > 0 {
		if err := o.alertRepo.ReplaceAll(ctx, result.Merged); err != nil {
			o.logger.Error("Failed to persist alert ledger", "error", err)
			if o.metrics != nil {
				o.metrics.ErrorsCount.WithLabelValues("store").Inc()
			}
		}
		if o.metrics != nil {
			o.metrics.AlertsUpserted.Add(float64(result.Upserts))
		}
	}

	o.dispatcher.DispatchNew(ctx, result.Merged, result.NewIDs)

	return result.Upserts, nil
}

// extractAlert runs the extractor for one message; a panic inside the
// heuristics is converted to a per-message error so the batch continues.
func (o *SyncOrchestrator) extractAlert(platform string, email *entity.Email) (alert *entity.BookingAlert, err error) {
	defer func() {
		if r := recover(); r != nil {
			alert = nil
			err = fmt.Errorf("extractor panic: %v", r)
		}
	}()

	cand := o.extractor.Extract(platform, email.Subject, email.PreferredBody())
	return &entity.BookingAlert{
		ID:           email.EmailID,
		Platform:     cand.Platform,
		Location:     cand.Location,
		BookingSlot:  cand.BookingSlot,
		GameDate:     cand.GameDate,
		GameTime:     cand.GameTime,
		Sport:        cand.Sport,
		CustomerName: cand.CustomerName,
		PaidAmount:   cand.PaidAmount,
		Message:      cand.Message,
		Timestamp:    email.ReceivedAt,
	}, nil
}
