package market

import (
	"errors"
	"fmt"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskTerminal     = errors.New("task already reached a terminal state")
	ErrAlreadySettled   = errors.New("task already settled")
	ErrResourceInUse    = errors.New("resource has live tasks bound to it")
	ErrTaskNotRunning   = errors.New("task is not running")
	ErrEmptyReceipt     = errors.New("payment sender returned an empty receipt")
)

// ValidationError reports a missing or invalid request field. Nothing is
// mutated when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// CapacityError rejects an admission: the resource is inactive or cannot
// cover the requested cores/memory.
type CapacityError struct {
	ResourceId string
	Reason     string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("resource %s cannot admit task: %s", e.ResourceId, e.Reason)
}

// TransferError wraps a payment sender failure. The task stays running and
// Complete may be retried.
type TransferError struct {
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("payment transfer failed: %v", e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }
