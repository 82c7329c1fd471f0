package book

import (
	"fmt"

	"github.com/sarthak567/adloom/campaign"
	"github.com/sarthak567/adloom/types"
)

// RegisterCampaign creates a campaign and funds it in one step: the
// budget is deposited into the advertiser's balance and the campaign
// opens with the same amount as its own envelope.
func (b *Book) RegisterCampaign(advertiserID, campaignID string, budget types.Amount, floorCPMMicros uint64) error {
	if _, ok := b.Campaigns[campaignID]; ok {
		return fmt.Errorf("%w: %q", ErrCampaignExists, campaignID)
	}
	if _, ok := b.Advertisers[advertiserID]; !ok {
		return fmt.Errorf("%w: %q", ErrAdvertiserNotFound, advertiserID)
	}
	if err := b.FundCampaign(advertiserID, budget); err != nil {
		return err
	}
	b.Campaigns[campaignID] = campaign.New(campaignID, advertiserID, budget, floorCPMMicros)
	return nil
}

// EvolveAdVariant upserts a creative in a campaign, stamping it with
// the current event id as its mutation slot. The event id is not
// advanced.
func (b *Book) EvolveAdVariant(campaignID, variantID, headline, status string) error {
	c, ok := b.Campaigns[campaignID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCampaignNotFound, campaignID)
	}
	c.UpsertVariant(variantID, headline, status, b.NextEventID)
	return nil
}
