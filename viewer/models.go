// Package viewer defines the viewer account model: attention scores,
// lifetime earnings, and the micro-credit line every viewer carries.
package viewer

import "github.com/sarthak567/adloom/types"

// BaseCreditLimit is the credit line a freshly registered viewer starts
// with. The limit is recomputed from the attention score before every
// credit check, so this value only matters until the first check.
const BaseCreditLimit = 5

// Account is a registered viewer.
type Account struct {
	Handle              string       `json:"handle"`
	AttentionScore      uint64       `json:"attention_score"`
	TotalEarned         types.Amount `json:"total_earned"`
	LifetimeImpressions uint64       `json:"lifetime_impressions"`
	OutstandingCredit   types.Amount `json:"outstanding_credit"`
	CreditLimit         types.Amount `json:"credit_limit"`
}

// New creates a viewer account with zeroed counters and the base
// credit line.
func New(handle string) *Account {
	return &Account{
		Handle:      handle,
		CreditLimit: types.NewAmount(BaseCreditLimit),
	}
}

// DeriveCreditLimit computes the credit line earned at a given
// attention score: 5 + max(score/5, 5), integer division.
func DeriveCreditLimit(score uint64) types.Amount {
	bonus := score / 5
	if bonus < 5 {
		bonus = 5
	}
	return types.NewAmount(BaseCreditLimit + bonus)
}

// SyncCreditLimit recomputes the account's credit limit from its
// current attention score. Called before any check that reads the
// limit, so a stale stored value never gates a decision.
func (a *Account) SyncCreditLimit() {
	a.CreditLimit = DeriveCreditLimit(a.AttentionScore)
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}
