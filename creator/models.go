// Package creator defines the creator account and the staking vault a
// creator may open against earned rewards.
package creator

import "github.com/sarthak567/adloom/types"

// DefaultAPYBps is the annual yield, in basis points, applied to newly
// opened vaults.
const DefaultAPYBps = 1200

// Account is a registered creator.
type Account struct {
	Handle            string       `json:"handle"`
	Category          string       `json:"category"`
	TotalEarned       types.Amount `json:"total_earned"`
	ImpressionsServed uint64       `json:"impressions_served"`
	AIOptimization    bool         `json:"ai_optimization"`
}

// New creates a creator account. AI optimization starts enabled.
func New(handle, category string) *Account {
	return &Account{
		Handle:         handle,
		Category:       category,
		AIOptimization: true,
	}
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}

// Vault holds a creator's staked balance. Yield compounds: each harvest
// is minted into the staked principal.
type Vault struct {
	CreatorID       string       `json:"creator_id"`
	Staked          types.Amount `json:"staked"`
	APYBps          uint64       `json:"apy_bps"`
	LastHarvestSlot uint64       `json:"last_harvest_slot"`
}

// NewVault opens an empty vault for a creator at the default yield.
func NewVault(creatorID string, slot uint64) *Vault {
	return &Vault{
		CreatorID:       creatorID,
		APYBps:          DefaultAPYBps,
		LastHarvestSlot: slot,
	}
}

// MonthlyYield computes one harvest period's yield on the staked
// balance: staked * apy / 10000 / 12, floored at each division.
func (v *Vault) MonthlyYield() types.Amount {
	return v.Staked.Bps(v.APYBps).DivUint64(12)
}

// Clone returns a deep copy of the vault.
func (v *Vault) Clone() *Vault {
	cp := *v
	return &cp
}
