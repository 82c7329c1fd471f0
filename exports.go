package adloom

import "github.com/sarthak567/adloom/types"

// Re-export common types for convenience so users don't have to import types package.

// Amount is re-exported from types package.
type Amount = types.Amount

// Re-export Amount constructors
var (
	NewAmount       = types.NewAmount
	ParseAmount     = types.ParseAmount
	MustParseAmount = types.MustParseAmount
	Zero            = types.Zero
	SumAmounts      = types.SumAmounts
)
