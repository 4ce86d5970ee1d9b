package storage

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is soft-deleted
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load before init has created the database
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrRetriesExhausted wraps the last error once WithRetry gives up
	ErrRetriesExhausted = errors.New("storage operation failed after maximum retries")
	// ErrAlreadyDeleted is returned when soft-deleting a deleted row
	ErrAlreadyDeleted = errors.New("already deleted")
	// ErrNotDeleted is returned when restoring a row that is not deleted
	ErrNotDeleted = errors.New("not deleted")
)
