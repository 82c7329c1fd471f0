package book

import (
	"fmt"

	"github.com/sarthak567/adloom/advertiser"
	"github.com/sarthak567/adloom/creator"
	"github.com/sarthak567/adloom/types"
	"github.com/sarthak567/adloom/viewer"
)

// RegisterViewer adds a viewer account under a fresh id.
func (b *Book) RegisterViewer(viewerID, handle string) error {
	if _, ok := b.Viewers[viewerID]; ok {
		return fmt.Errorf("%w: %q", ErrViewerExists, viewerID)
	}
	b.Viewers[viewerID] = viewer.New(handle)
	return nil
}

// RegisterCreator adds a creator account under a fresh id.
func (b *Book) RegisterCreator(creatorID, handle, category string) error {
	if _, ok := b.Creators[creatorID]; ok {
		return fmt.Errorf("%w: %q", ErrCreatorExists, creatorID)
	}
	b.Creators[creatorID] = creator.New(handle, category)
	return nil
}

// RegisterAdvertiser adds an advertiser account under a fresh id.
func (b *Book) RegisterAdvertiser(advertiserID, brand string, floorCPMMicros uint64) error {
	if _, ok := b.Advertisers[advertiserID]; ok {
		return fmt.Errorf("%w: %q", ErrAdvertiserExists, advertiserID)
	}
	acct := advertiser.New(brand)
	acct.FloorCPMMicros = floorCPMMicros
	b.Advertisers[advertiserID] = acct
	return nil
}

// FundCampaign deposits value into an advertiser's balance and locks
// it in the protocol TVL.
func (b *Book) FundCampaign(advertiserID string, amount types.Amount) error {
	acct, ok := b.Advertisers[advertiserID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAdvertiserNotFound, advertiserID)
	}
	acct.TotalDeposited = acct.TotalDeposited.Add(amount)
	acct.BudgetRemaining = acct.BudgetRemaining.Add(amount)
	b.AdvertiserTVL = b.AdvertiserTVL.Add(amount)
	return nil
}

// ConfigureAIAgent replaces an advertiser's autopilot settings: notes,
// floor CPM and bid multiplier, all at once.
func (b *Book) ConfigureAIAgent(advertiserID, aiNotes string, floorCPMMicros, bidMultiplierBps uint64) error {
	acct, ok := b.Advertisers[advertiserID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAdvertiserNotFound, advertiserID)
	}
	acct.Configure(aiNotes, floorCPMMicros)
	acct.AutoBidMultiplierBps = bidMultiplierBps
	return nil
}

// SubmitInstruction appends a free-text brand directive to the shared
// instruction log. The entry borrows the current event id without
// advancing it, so consecutive instructions can share an id.
func (b *Book) SubmitInstruction(advertiserID, text string) error {
	if _, ok := b.Advertisers[advertiserID]; !ok {
		return fmt.Errorf("%w: %q", ErrAdvertiserNotFound, advertiserID)
	}
	b.pushInstruction(advertiser.Instruction{
		ID:           b.NextEventID,
		AdvertiserID: advertiserID,
		Text:         text,
	})
	return nil
}
