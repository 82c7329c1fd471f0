// Package event defines the attention event record emitted for every
// verified view, and the bounded history log that holds them.
package event

import "github.com/sarthak567/adloom/types"

// AttentionEvent is the settlement record of one verified view: who
// watched, who served, who paid, and how the reward split.
type AttentionEvent struct {
	ID            uint64       `json:"id"`
	CampaignID    string       `json:"campaign_id,omitempty"`
	ViewerID      string       `json:"viewer_id"`
	CreatorID     string       `json:"creator_id"`
	AdvertiserID  string       `json:"advertiser_id"`
	AttnUnits     uint64       `json:"attn_units"`
	Reward        types.Amount `json:"reward"`
	ViewerShare   types.Amount `json:"viewer_share"`
	CreatorShare  types.Amount `json:"creator_share"`
	ProtocolShare types.Amount `json:"protocol_share"`
}

// Trim drops the oldest events until the log holds at most max items.
// Order is preserved.
func Trim(log []AttentionEvent, max int) []AttentionEvent {
	if len(log) <= max {
		return log
	}
	return log[len(log)-max:]
}
