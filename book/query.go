package book

import (
	"sort"

	"github.com/sarthak567/adloom/advertiser"
	"github.com/sarthak567/adloom/campaign"
	"github.com/sarthak567/adloom/creator"
	"github.com/sarthak567/adloom/event"
	"github.com/sarthak567/adloom/loan"
	"github.com/sarthak567/adloom/types"
	"github.com/sarthak567/adloom/viewer"
)

// Totals is the global pulse: registry sizes and protocol aggregates.
type Totals struct {
	Viewers           int          `json:"viewers"`
	Creators          int          `json:"creators"`
	Advertisers       int          `json:"advertisers"`
	Campaigns         int          `json:"campaigns"`
	Treasury          types.Amount `json:"protocol_treasury"`
	AdvertiserTVL     types.Amount `json:"advertiser_value_locked"`
	TotalImpressions  uint64       `json:"total_impressions"`
	OutstandingCredit types.Amount `json:"outstanding_credit"`
}

// Totals summarizes the book.
func (b *Book) Totals() Totals {
	return Totals{
		Viewers:           len(b.Viewers),
		Creators:          len(b.Creators),
		Advertisers:       len(b.Advertisers),
		Campaigns:         len(b.Campaigns),
		Treasury:          b.Treasury,
		AdvertiserTVL:     b.AdvertiserTVL,
		TotalImpressions:  b.TotalImpressions,
		OutstandingCredit: b.OutstandingCreditTotal(),
	}
}

// OutstandingCreditTotal sums outstanding credit across all viewers.
func (b *Book) OutstandingCreditTotal() types.Amount {
	var total types.Amount
	for _, v := range b.Viewers {
		total = total.Add(v.OutstandingCredit)
	}
	return total
}

// Viewer returns a copy of a viewer account.
func (b *Book) Viewer(viewerID string) (*viewer.Account, bool) {
	v, ok := b.Viewers[viewerID]
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// Creator returns a copy of a creator account.
func (b *Book) Creator(creatorID string) (*creator.Account, bool) {
	c, ok := b.Creators[creatorID]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Advertiser returns a copy of an advertiser account.
func (b *Book) Advertiser(advertiserID string) (*advertiser.Account, bool) {
	a, ok := b.Advertisers[advertiserID]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// Campaign returns a copy of a campaign, variants included.
func (b *Book) Campaign(campaignID string) (*campaign.Campaign, bool) {
	c, ok := b.Campaigns[campaignID]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Vault returns a copy of a creator's vault.
func (b *Book) Vault(creatorID string) (*creator.Vault, bool) {
	v, ok := b.Vaults[creatorID]
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// Loan returns a copy of a viewer's loan record.
func (b *Book) Loan(viewerID string) (*loan.Loan, bool) {
	l, ok := b.Loans[viewerID]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// LeaderboardEntry pairs a viewer id with its ranked account.
type LeaderboardEntry struct {
	ViewerID       string       `json:"viewer_id"`
	Handle         string       `json:"handle"`
	AttentionScore uint64       `json:"attention_score"`
	TotalEarned    types.Amount `json:"total_earned"`
}

// Leaderboard returns up to n viewers ranked by attention score,
// highest first. Ties rank in viewer-id order so results stay
// deterministic.
func (b *Book) Leaderboard(n int) []LeaderboardEntry {
	if n <= 0 {
		return nil
	}

	ids := make([]string, 0, len(b.Viewers))
	for id := range b.Viewers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		v := b.Viewers[id]
		entries = append(entries, LeaderboardEntry{
			ViewerID:       id,
			Handle:         v.Handle,
			AttentionScore: v.AttentionScore,
			TotalEarned:    v.TotalEarned,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AttentionScore > entries[j].AttentionScore
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// RecentEvents returns up to n attention events, newest first.
func (b *Book) RecentEvents(n int) []event.AttentionEvent {
	if n <= 0 {
		return nil
	}
	if n > len(b.Events) {
		n = len(b.Events)
	}
	out := make([]event.AttentionEvent, 0, n)
	for i := len(b.Events) - 1; i >= len(b.Events)-n; i-- {
		out = append(out, b.Events[i])
	}
	return out
}

// RecentInstructions returns up to n brand instructions, newest first.
func (b *Book) RecentInstructions(n int) []advertiser.Instruction {
	if n <= 0 {
		return nil
	}
	if n > len(b.Instructions) {
		n = len(b.Instructions)
	}
	out := make([]advertiser.Instruction, 0, n)
	for i := len(b.Instructions) - 1; i >= len(b.Instructions)-n; i-- {
		out = append(out, b.Instructions[i])
	}
	return out
}
