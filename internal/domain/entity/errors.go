package entity

import (
	"errors"
	"fmt"
)

// ErrSubscriptionExpired is returned by the push client when the relay
// reports the subscriber's endpoint as gone. The subscription is dead,
// delivery is not retried.
var ErrSubscriptionExpired = errors.New("push subscription expired")

// ConfigurationError marks a fatal setup problem (missing credentials).
// It is surfaced immediately, without retry.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ConnectionError marks a transient mailbox failure. The orchestrator
// retries the cycle exactly once before reporting failure.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("mailbox connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsConnectionError reports whether err is a ConnectionError
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
