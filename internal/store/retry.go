package store

import (
	"errors"
	"time"
)

// Operation is a function that performs an action and returns an error if it fails.
type Operation func() error

// IsRetryable is a function that checks if an error is worth retrying.
type IsRetryable func(err error) bool

const DefaultMaxRetries = 3

// ErrDuplicateID is returned when a freshly generated identifier collides
// with an existing record in the collection.
var ErrDuplicateID = errors.New("duplicate id")

// Try executes an operation with default retry settings for id collisions.
func Try(op Operation) error {
	return WithRetries(op, DefaultMaxRetries, IsDuplicateIDError)
}

// WithRetries executes an operation with a retry mechanism.
// It attempts the operation up to maxRetries times beyond the initial attempt.
func WithRetries(op Operation, maxRetries int, retryable IsRetryable) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil // Success
		}

		// If this was the last attempt and it failed, break out of the loop
		// to return the error.
		if attempt == maxRetries {
			break
		}

		if retryable(err) {
			time.Sleep(time.Duration(50*(attempt+1)) * time.Millisecond) // Simple incremental backoff
		} else {
			return err // Not retryable, return immediately
		}
	}
	return err // All attempts failed or last attempt failed
}

// IsDuplicateIDError checks if an error is an identifier collision.
func IsDuplicateIDError(err error) bool {
	return errors.Is(err, ErrDuplicateID)
}
