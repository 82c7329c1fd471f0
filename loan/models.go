// Package loan defines principal loans issued to viewers, tracked
// separately from the rolling micro-credit line.
package loan

import "github.com/sarthak567/adloom/types"

// Loan status values.
const (
	StatusActive  = "active"
	StatusSettled = "settled"
)

// Loan is a viewer's principal loan. A viewer holds at most one loan
// record; repeat requests accumulate into it.
type Loan struct {
	ViewerID    string       `json:"viewer_id"`
	Principal   types.Amount `json:"principal"`
	Outstanding types.Amount `json:"outstanding"`
	Status      string       `json:"status"`
}

// New creates an empty loan record for a viewer.
func New(viewerID string) *Loan {
	return &Loan{
		ViewerID: viewerID,
		Status:   StatusActive,
	}
}

// Borrow adds amount to both principal and outstanding. A settled loan
// reactivates when new principal is drawn.
func (l *Loan) Borrow(amount types.Amount) {
	l.Principal = l.Principal.Add(amount)
	l.Outstanding = l.Outstanding.Add(amount)
	l.syncStatus()
}

// Repay reduces the outstanding balance by amount, capped at the
// balance itself, and settles the loan when it reaches zero. Returns
// the portion actually applied.
func (l *Loan) Repay(amount types.Amount) types.Amount {
	applied := amount.Min(l.Outstanding)
	l.Outstanding = l.Outstanding.Sub(applied)
	l.syncStatus()
	return applied
}

// syncStatus keeps the invariant: settled iff outstanding is zero.
func (l *Loan) syncStatus() {
	if l.Outstanding.IsZero() {
		l.Status = StatusSettled
	} else {
		l.Status = StatusActive
	}
}

// Settled reports whether the loan is fully repaid.
func (l *Loan) Settled() bool { return l.Status == StatusSettled }

// Clone returns a deep copy of the loan.
func (l *Loan) Clone() *Loan {
	cp := *l
	return &cp
}
