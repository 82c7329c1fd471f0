package book

import (
	"fmt"

	"github.com/sarthak567/adloom/creator"
	"github.com/sarthak567/adloom/types"
)

// StakeVault adds to a creator's staked balance, opening the vault on
// first use. The harvest slot is pinned to the current event id so a
// fresh stake starts a new accrual window.
func (b *Book) StakeVault(creatorID string, amount types.Amount) error {
	if _, ok := b.Creators[creatorID]; !ok {
		return fmt.Errorf("%w: %q", ErrCreatorNotFound, creatorID)
	}
	v, ok := b.Vaults[creatorID]
	if !ok {
		v = creator.NewVault(creatorID, b.NextEventID)
		b.Vaults[creatorID] = v
	}
	v.Staked = v.Staked.Add(amount)
	v.LastHarvestSlot = b.NextEventID
	return nil
}

// HarvestVault mints one period's yield into the staked balance and
// returns it. Yield compounds across harvests.
func (b *Book) HarvestVault(creatorID string) (types.Amount, error) {
	v, ok := b.Vaults[creatorID]
	if !ok {
		return types.Zero(), fmt.Errorf("%w: creator %q", ErrVaultNotFound, creatorID)
	}
	yield := v.MonthlyYield()
	v.Staked = v.Staked.Add(yield)
	v.LastHarvestSlot = b.NextEventID
	return yield, nil
}
