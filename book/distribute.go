package book

import (
	"fmt"

	"github.com/sarthak567/adloom/event"
	"github.com/sarthak567/adloom/types"
)

// Reward split, in basis points. The protocol takes whatever floor
// division leaves over, so the three shares always sum to the reward.
const (
	ViewerShareBps  = 3_500
	CreatorShareBps = 5_500
)

// autoRepayPct is the share of the viewer's cut diverted to credit
// repayment while any credit is outstanding.
const autoRepayPct = 40

// RecordVerifiedView settles one verified view: debits the paying
// campaign and advertiser, splits the reward between creator, viewer
// and protocol, auto-repays outstanding viewer credit from the
// viewer's cut, and appends an attention event.
//
// campaignID may be empty for direct (non-campaign) buys; only the
// advertiser budget is debited then.
func (b *Book) RecordVerifiedView(campaignID, advertiserID, creatorID, viewerID string, attnUnits uint64, rewardPerUnit types.Amount) (*event.AttentionEvent, error) {
	if attnUnits == 0 {
		return nil, ErrZeroAttention
	}
	reward, ok := rewardPerUnit.MulUint64(attnUnits)
	if !ok {
		return nil, ErrRewardOverflow
	}

	var campaignRef string
	if campaignID != "" {
		c, found := b.Campaigns[campaignID]
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrCampaignNotFound, campaignID)
		}
		if c.BudgetRemaining.LessThan(reward) {
			return nil, fmt.Errorf("%w: campaign %q", ErrInsufficientCampaignBudget, campaignID)
		}
		c.BudgetRemaining = c.BudgetRemaining.Sub(reward)
		c.ImpressionsServed = satAdd(c.ImpressionsServed, attnUnits)
		campaignRef = c.ID
	}

	adv, found := b.Advertisers[advertiserID]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrAdvertiserNotFound, advertiserID)
	}
	if adv.BudgetRemaining.LessThan(reward) {
		return nil, fmt.Errorf("%w: advertiser %q", ErrInsufficientAdvertiserBudget, advertiserID)
	}
	adv.BudgetRemaining = adv.BudgetRemaining.Sub(reward)
	b.AdvertiserTVL = b.AdvertiserTVL.Sub(reward)

	cr, found := b.Creators[creatorID]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrCreatorNotFound, creatorID)
	}
	v, found := b.Viewers[viewerID]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrViewerNotFound, viewerID)
	}

	creatorShare := reward.Bps(CreatorShareBps)
	viewerShare := reward.Bps(ViewerShareBps)
	protocolShare := reward.Sub(creatorShare.Add(viewerShare))

	// Divert part of the viewer's cut to outstanding credit before it
	// lands in their balance.
	autoRepay := types.Zero()
	if !v.OutstandingCredit.IsZero() {
		repayCap := viewerShare.Pct(autoRepayPct)
		autoRepay = repayCap.Min(v.OutstandingCredit)
		v.OutstandingCredit = v.OutstandingCredit.Sub(autoRepay)
	}
	viewerShare = viewerShare.Sub(autoRepay)
	b.Treasury = b.Treasury.Add(protocolShare).Add(autoRepay)

	v.TotalEarned = v.TotalEarned.Add(viewerShare)
	v.AttentionScore = satAdd(v.AttentionScore, attnUnits)
	v.LifetimeImpressions = satAdd(v.LifetimeImpressions, attnUnits)
	v.SyncCreditLimit()

	cr.TotalEarned = cr.TotalEarned.Add(creatorShare)
	cr.ImpressionsServed = satAdd(cr.ImpressionsServed, attnUnits)

	b.TotalImpressions = satAdd(b.TotalImpressions, attnUnits)

	evt := event.AttentionEvent{
		ID:            b.NextEventID,
		CampaignID:    campaignRef,
		ViewerID:      viewerID,
		CreatorID:     creatorID,
		AdvertiserID:  advertiserID,
		AttnUnits:     attnUnits,
		Reward:        reward,
		ViewerShare:   viewerShare,
		CreatorShare:  creatorShare,
		ProtocolShare: protocolShare.Add(autoRepay),
	}
	b.NextEventID++
	b.pushEvent(evt)
	return &b.Events[len(b.Events)-1], nil
}
