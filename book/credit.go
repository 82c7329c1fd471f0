package book

import (
	"fmt"

	"github.com/sarthak567/adloom/loan"
	"github.com/sarthak567/adloom/types"
)

// RequestCredit draws on a viewer's micro-credit line. The limit is
// recomputed from the attention score before the check, so a viewer
// whose score grew since the last operation gets the larger line
// immediately.
func (b *Book) RequestCredit(viewerID string, amount types.Amount) error {
	v, ok := b.Viewers[viewerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrViewerNotFound, viewerID)
	}
	v.SyncCreditLimit()
	if v.CreditLimit.LessThan(v.OutstandingCredit.Add(amount)) {
		return fmt.Errorf("%w: requested %s, limit %s", ErrCreditLimitExceeded, amount, v.CreditLimit)
	}
	v.OutstandingCredit = v.OutstandingCredit.Add(amount)
	return nil
}

// ClearCredit repays a viewer's outstanding credit. Overpayment is
// forgiven: only min(amount, outstanding) is applied, and the applied
// portion flows into the protocol treasury.
func (b *Book) ClearCredit(viewerID string, amount types.Amount) error {
	v, ok := b.Viewers[viewerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrViewerNotFound, viewerID)
	}
	applied := amount.Min(v.OutstandingCredit)
	v.OutstandingCredit = v.OutstandingCredit.Sub(applied)
	b.Treasury = b.Treasury.Add(applied)
	return nil
}

// RequestLoan draws principal against a viewer's loan record, creating
// the record on first use. Repeat requests accumulate.
func (b *Book) RequestLoan(viewerID string, amount types.Amount) error {
	if _, ok := b.Viewers[viewerID]; !ok {
		return fmt.Errorf("%w: %q", ErrViewerNotFound, viewerID)
	}
	l, ok := b.Loans[viewerID]
	if !ok {
		l = loan.New(viewerID)
		b.Loans[viewerID] = l
	}
	l.Borrow(amount)
	return nil
}

// RepayLoan pays down a viewer's loan. Overpayment is forgiven, and
// the applied portion flows into the protocol treasury.
func (b *Book) RepayLoan(viewerID string, amount types.Amount) error {
	l, ok := b.Loans[viewerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrLoanNotFound, viewerID)
	}
	applied := l.Repay(amount)
	b.Treasury = b.Treasury.Add(applied)
	return nil
}
