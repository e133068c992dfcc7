package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"time"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/internal/domain/repository"
	"courtcast-service/internal/infrastructure/oauth"
	"courtcast-service/pkg/logger"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailScanner implements the MailboxScanner interface on top of the
// Gmail API. The service client is created lazily on first use so a
// missing-credentials configuration error surfaces at cycle time.
type GmailScanner struct {
	clientID     string
	clientSecret string
	refreshToken string
	chunkSize    int
	service      *gmail.Service
	logger       logger.Logger
}

// NewGmailScanner creates a new Gmail-backed mailbox scanner
func NewGmailScanner(clientID, clientSecret, refreshToken string, chunkSize int, logger logger.Logger) repository.MailboxScanner {
	if chunkSize <= 0 {
		chunkSize = 20
	}
	return &GmailScanner{
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		chunkSize:    chunkSize,
		logger:       logger,
	}
}

func (s *GmailScanner) ensureService(ctx context.Context) error {
	if s.service != nil {
		return nil
	}
	if s.clientID == "" || s.clientSecret == "" || s.refreshToken == "" {
		return &entity.ConfigurationError{Reason: "gmail credentials not configured"}
	}

	gmailOAuth := oauth.NewGmailOAuth(s.clientID, s.clientSecret, s.refreshToken, s.logger)
	service, err := gmail.NewService(ctx, option.WithTokenSource(gmailOAuth.GetTokenSource(ctx)))
	if err != nil {
		return &entity.ConnectionError{Err: err}
	}
	s.service = service
	return nil
}

// Scan lists messages received in the last lookbackDays and fetches
// header metadata only. Any listing or header fetch failure aborts the
// scan: a partial envelope list is not trusted.
func (s *GmailScanner) Scan(ctx context.Context, lookbackDays int) ([]*entity.EmailEnvelope, error) {
	if err := s.ensureService(ctx); err != nil {
		return nil, err
	}

	after := time.Now().AddDate(0, 0, -lookbackDays)
	query := fmt.Sprintf("after:%s", after.Format("2006/01/02"))

	var ids []string
	pageToken := ""
	for {
		req := s.service.Users.Messages.List("me").Q(query).Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		resp, err := req.Do()
		if err != nil {
			return nil, &entity.ConnectionError{Err: fmt.Errorf("failed to list messages: %w", err)}
		}
		for _, msg := range resp.Messages {
			ids = append(ids, msg.Id)
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	envelopes := make([]*entity.EmailEnvelope, 0, len(ids))
	for _, id := range ids {
		msg, err := s.service.Users.Messages.Get("me", id).
			Format("metadata").
			MetadataHeaders("Subject", "From").
			Context(ctx).Do()
		if err != nil {
			return nil, &entity.ConnectionError{Err: fmt.Errorf("failed to fetch headers for %s: %w", id, err)}
		}

		env := &entity.EmailEnvelope{
			EmailID:    msg.Id,
			ReceivedAt: time.Unix(0, msg.InternalDate*1000000),
		}
		if msg.Payload != nil {
			for _, header := range msg.Payload.Headers {
				switch header.Name {
				case "Subject":
					env.Subject = header.Value
				case "From":
					env.From = header.Value
				}
			}
		}
		envelopes = append(envelopes, env)
	}

	sort.Slice(envelopes, func(i, j int) bool {
		return envelopes[i].ReceivedAt.After(envelopes[j].ReceivedAt)
	})

	s.logger.Info("Mailbox scan completed", "lookbackDays", lookbackDays, "messages", len(envelopes))
	return envelopes, nil
}

// FetchBodies fetches full messages for the given ids in fixed-size
// chunks. A single message failure is logged and skipped; the
// envelope list was already trusted at scan time.
func (s *GmailScanner) FetchBodies(ctx context.Context, emailIDs []string) ([]*entity.Email, error) {
	if err := s.ensureService(ctx); err != nil {
		return nil, err
	}

	emails := make([]*entity.Email, 0, len(emailIDs))
	for start := 0; start < len(emailIDs); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(emailIDs) {
			end = len(emailIDs)
		}
		for _, id := range emailIDs[start:end] {
			msg, err := s.service.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
			if err != nil {
				s.logger.Error("Failed to fetch message body", "msgId", id, "error", err)
				continue
			}
			emails = append(emails, s.convertToEmail(msg))
		}
	}
	return emails, nil
}

// convertToEmail converts a Gmail message to the domain entity
func (s *GmailScanner) convertToEmail(msg *gmail.Message) *entity.Email {
	email := &entity.Email{
		EmailID:    msg.Id,
		ReceivedAt: time.Unix(0, msg.InternalDate*1000000),
	}

	if msg.Payload == nil {
		return email
	}

	// Extract headers
	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			email.Subject = header.Value
		case "From":
			email.From = header.Value
		}
	}

	// Extract body
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(msg.Payload.Body.Data); err == nil {
			email.Body = string(data)
		}
	}

	// Handle multipart messages
	for _, part := range msg.Payload.Parts {
		if part.Body == nil || part.Body.Data == "" {
			continue
		}
		data, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			continue
		}
		switch part.MimeType {
		case "text/plain":
			email.Body = string(data)
		case "text/html":
			email.HTMLBody = string(data)
		}
	}

	return email
}
