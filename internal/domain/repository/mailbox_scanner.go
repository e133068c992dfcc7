package repository

import (
	"context"

	"courtcast-service/internal/domain/entity"
)

// MailboxScanner defines the interface for mailbox discovery. Scan
// returns header-only envelopes for messages received in the last
// lookbackDays, newest first. FetchBodies fetches full messages for
// the given ids, batched internally by a fixed chunk size.
type MailboxScanner interface {
	Scan(ctx context.Context, lookbackDays int) ([]*entity.EmailEnvelope, error)
	FetchBodies(ctx context.Context, emailIDs []string) ([]*entity.Email, error)
}
