package book

import "errors"

// Sentinel errors for transition failures. Transitions wrap these with
// the offending id via fmt.Errorf("%w ...") so errors.Is keeps working.
var (
	// Registration conflicts
	ErrViewerExists     = errors.New("adloom: viewer already registered")
	ErrCreatorExists    = errors.New("adloom: creator already registered")
	ErrAdvertiserExists = errors.New("adloom: advertiser already registered")
	ErrCampaignExists   = errors.New("adloom: campaign already exists")

	// Missing references
	ErrViewerNotFound     = errors.New("adloom: viewer not found")
	ErrCreatorNotFound    = errors.New("adloom: creator not found")
	ErrAdvertiserNotFound = errors.New("adloom: advertiser not found")
	ErrCampaignNotFound   = errors.New("adloom: campaign not found")
	ErrVaultNotFound      = errors.New("adloom: vault not found")
	ErrLoanNotFound       = errors.New("adloom: loan not found")

	// Validation and arithmetic
	ErrZeroAttention  = errors.New("adloom: attention units must be > 0")
	ErrRewardOverflow = errors.New("adloom: reward overflow")
	ErrInvalidAmount  = errors.New("adloom: invalid amount")

	// Economic limits
	ErrInsufficientCampaignBudget   = errors.New("adloom: insufficient campaign budget")
	ErrInsufficientAdvertiserBudget = errors.New("adloom: insufficient advertiser budget")
	ErrCreditLimitExceeded          = errors.New("adloom: credit request exceeds limit")
)

// IsNotFound returns true if the error names a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrViewerNotFound) ||
		errors.Is(err, ErrCreatorNotFound) ||
		errors.Is(err, ErrAdvertiserNotFound) ||
		errors.Is(err, ErrCampaignNotFound) ||
		errors.Is(err, ErrVaultNotFound) ||
		errors.Is(err, ErrLoanNotFound)
}

// IsConflict returns true if the error names a duplicate registration.
func IsConflict(err error) bool {
	return errors.Is(err, ErrViewerExists) ||
		errors.Is(err, ErrCreatorExists) ||
		errors.Is(err, ErrAdvertiserExists) ||
		errors.Is(err, ErrCampaignExists)
}

// IsBudgetError returns true if the error is an economic limit:
// exhausted budgets or an exceeded credit line.
func IsBudgetError(err error) bool {
	return errors.Is(err, ErrInsufficientCampaignBudget) ||
		errors.Is(err, ErrInsufficientAdvertiserBudget) ||
		errors.Is(err, ErrCreditLimitExceeded)
}
