package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrInconsistent = errors.New("fine and ledger diverged")
)

var (
	ErrFineNotFound    = fmt.Errorf("%w: fine was not found", ErrNotFound)
	ErrVehicleNotFound = fmt.Errorf("%w: vehicle was not found", ErrNotFound)
	ErrOwnerNotFound   = fmt.Errorf("%w: vehicle owner was not found", ErrNotFound)
	ErrLedgerNotFound  = fmt.Errorf("%w: ledger entry was not found", ErrNotFound)
	ErrWindowExpired   = fmt.Errorf("%w: window expired, the fine can no longer be modified", ErrForbidden)
	ErrRoleDenied      = fmt.Errorf("%w: role is not allowed to perform this operation", ErrForbidden)
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Which half of a dual-store write went through.
const (
	ArtifactFine   = "fine"
	ArtifactLedger = "ledger"
)

// InconsistencyError is returned when the fine store and the ledger disagree
// after a partial write. Written names the store holding the current record,
// Missing the one lacking it. When Stale is set the lagging store still holds
// the previous version of the record. Reference lets the caller look the fine
// up before retrying.
type InconsistencyError struct {
	Reference string
	Op        string
	Written   string
	Missing   string
	Stale     bool
	Err       error
}

func (e *InconsistencyError) Error() string {
	state := "missing"
	if e.Stale {
		state = "stale"
	}
	return fmt.Sprintf("%s %s: %s kept, %s %s: %v", e.Op, e.Reference, e.Written, e.Missing, state, e.Err)
}

func (e *InconsistencyError) Unwrap() []error { return []error{ErrInconsistent, e.Err} }
