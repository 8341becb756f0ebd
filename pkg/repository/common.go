package repository

import (
	"context"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

// errCritical matches any criticalError in repeater's termination list
var errCritical = &criticalError{}

func (e *criticalError) Error() string {
	if e.err == nil {
		return "critical error"
	}
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// Is reports any criticalError as a match
func (e *criticalError) Is(target error) bool {
	_, ok := target.(*criticalError)
	return ok
}

// retryOnLock calls fn with backoff while it fails with sqlite lock errors, other errors stop at once
func retryOnLock(ctx context.Context, attempts int, initial time.Duration, fn func() error) error {
	retrier := repeater.NewBackoff(attempts, initial, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err // retry on lock
		}
		return &criticalError{err: err}
	}, errCritical)
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
