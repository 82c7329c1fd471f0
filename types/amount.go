// Package types provides common value types used across adloom.
package types

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// BpsDenominator is the fixed-point denominator for basis-point splits.
const BpsDenominator = 10_000

// Amount represents a non-negative quantity of ledger units.
// It is a 256-bit unsigned integer — wide enough that account lifetimes
// never exhaust it — and all arithmetic is integer-only.
//
// Amount is a value type: methods return new values and never mutate the
// receiver, so amounts can be copied and embedded in snapshots freely.
type Amount struct {
	u uint256.Int
}

// NewAmount creates an Amount from a uint64.
func NewAmount(v uint64) Amount {
	var a Amount
	a.u.SetUint64(v)
	return a
}

// ParseAmount parses a decimal string into an Amount. This is the wire
// form used by the command surface: amounts travel as decimal text.
func ParseAmount(s string) (Amount, error) {
	var a Amount
	if err := a.u.SetFromDecimal(s); err != nil {
		return Amount{}, fmt.Errorf("types: parse amount %q: %w", s, err)
	}
	return a, nil
}

// MustParseAmount is like ParseAmount but panics on error. Use for
// hardcoded literals in tests.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Zero returns the zero Amount.
func Zero() Amount { return Amount{} }

// Arithmetic operations

// Add returns a + b. The sum saturates at the maximum representable
// value; with 256-bit headroom this bound is unreachable in practice.
func (a Amount) Add(b Amount) Amount {
	var z Amount
	if _, overflow := z.u.AddOverflow(&a.u, &b.u); overflow {
		z.u.SetAllOne()
	}
	return z
}

// Sub returns a - b. Callers must establish a >= b first (via Cmp or
// LessThan); subtracting a larger value saturates at zero.
func (a Amount) Sub(b Amount) Amount {
	var z Amount
	if _, underflow := z.u.SubOverflow(&a.u, &b.u); underflow {
		z.u.Clear()
	}
	return z
}

// MulUint64 returns a * n and reports whether the multiplication stayed
// within range. A false result means the product overflowed and the
// returned Amount is meaningless.
func (a Amount) MulUint64(n uint64) (Amount, bool) {
	var z Amount
	_, overflow := z.u.MulOverflow(&a.u, uint256.NewInt(n))
	return z, !overflow
}

// Bps returns a * bps / 10000 with floor division.
func (a Amount) Bps(bps uint64) Amount {
	var z Amount
	if _, overflow := z.u.MulOverflow(&a.u, uint256.NewInt(bps)); overflow {
		// Divide first when the product would not fit. Loses at most
		// bps-1 units, and only for amounts near the 256-bit ceiling.
		var q uint256.Int
		q.Div(&a.u, uint256.NewInt(BpsDenominator))
		z.u.Mul(&q, uint256.NewInt(bps))
		return z
	}
	z.u.Div(&z.u, uint256.NewInt(BpsDenominator))
	return z
}

// Pct returns a * pct / 100 with floor division.
func (a Amount) Pct(pct uint64) Amount {
	var z Amount
	if _, overflow := z.u.MulOverflow(&a.u, uint256.NewInt(pct)); overflow {
		var q uint256.Int
		q.Div(&a.u, uint256.NewInt(100))
		z.u.Mul(&q, uint256.NewInt(pct))
		return z
	}
	z.u.Div(&z.u, uint256.NewInt(100))
	return z
}

// DivUint64 returns a / n with floor division. Panics if n is zero.
func (a Amount) DivUint64(n uint64) Amount {
	if n == 0 {
		panic("types: amount division by zero")
	}
	var z Amount
	z.u.Div(&a.u, uint256.NewInt(n))
	return z
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool { return a.u.IsZero() }

// Cmp compares a and b, returning -1, 0 or +1.
func (a Amount) Cmp(b Amount) int { return a.u.Cmp(&b.u) }

// Equal returns true if both amounts are equal.
func (a Amount) Equal(b Amount) bool { return a.u.Eq(&b.u) }

// LessThan returns true if a < b.
func (a Amount) LessThan(b Amount) bool { return a.u.Lt(&b.u) }

// Min returns the smaller of a and b.
func (a Amount) Min(b Amount) Amount {
	if a.u.Lt(&b.u) {
		return a
	}
	return b
}

// Uint64 returns the amount as a uint64, truncating high words. Only
// use after confirming the amount fits (IsUint64).
func (a Amount) Uint64() uint64 { return a.u.Uint64() }

// IsUint64 reports whether the amount fits in a uint64.
func (a Amount) IsUint64() bool { return a.u.IsUint64() }

// Formatting and encoding

// String returns the decimal representation.
func (a Amount) String() string { return a.u.Dec() }

// MarshalJSON implements json.Marshaler. Amounts serialize as decimal
// strings so snapshots survive JSON number precision limits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.u.Dec())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("types: unmarshal amount: %w", err)
	}
	if s == "" {
		*a = Amount{}
		return nil
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.u.Dec()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*a = Amount{}
		return nil
	}
	parsed, err := ParseAmount(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// SumAmounts calculates the sum of multiple amounts.
func SumAmounts(values ...Amount) Amount {
	var total Amount
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
