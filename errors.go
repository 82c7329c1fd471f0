package adloom

import (
	"errors"
	"fmt"

	"github.com/sarthak567/adloom/book"
	"github.com/sarthak567/adloom/store"
)

// Engine errors.
var (
	// ErrNotStarted means Apply was called before Start.
	ErrNotStarted = errors.New("adloom: ledger not started")
)

// Domain sentinels re-exported from the book package so callers can
// match errors without importing it.
var (
	// Registration conflicts
	ErrViewerExists     = book.ErrViewerExists
	ErrCreatorExists    = book.ErrCreatorExists
	ErrAdvertiserExists = book.ErrAdvertiserExists
	ErrCampaignExists   = book.ErrCampaignExists

	// Missing entities
	ErrViewerNotFound     = book.ErrViewerNotFound
	ErrCreatorNotFound    = book.ErrCreatorNotFound
	ErrAdvertiserNotFound = book.ErrAdvertiserNotFound
	ErrCampaignNotFound   = book.ErrCampaignNotFound
	ErrVaultNotFound      = book.ErrVaultNotFound
	ErrLoanNotFound       = book.ErrLoanNotFound

	// Settlement errors
	ErrZeroAttention                = book.ErrZeroAttention
	ErrRewardOverflow               = book.ErrRewardOverflow
	ErrInvalidAmount                = book.ErrInvalidAmount
	ErrInsufficientCampaignBudget   = book.ErrInsufficientCampaignBudget
	ErrInsufficientAdvertiserBudget = book.ErrInsufficientAdvertiserBudget
	ErrCreditLimitExceeded          = book.ErrCreditLimitExceeded

	// Store errors
	ErrSnapshotNotFound = store.ErrSnapshotNotFound
	ErrStoreClosed      = store.ErrStoreClosed
	ErrMigrationFailed  = store.ErrMigrationFailed
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("adloom: validation failed for %s: %s", e.Field, e.Message)
}

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "adloom: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("adloom: %d errors occurred", len(e.Errors))
}

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// First returns the first error or nil.
func (e MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// IsNotFound returns true if the error is a missing-entity error.
func IsNotFound(err error) bool {
	return book.IsNotFound(err) || errors.Is(err, store.ErrSnapshotNotFound)
}

// IsConflict returns true if the error is a duplicate-registration error.
func IsConflict(err error) bool {
	return book.IsConflict(err)
}

// IsBudgetError returns true if the error is related to budgets or
// credit limits.
func IsBudgetError(err error) bool {
	return book.IsBudgetError(err)
}
