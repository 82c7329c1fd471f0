// Package campaign defines campaigns and the ad variants the autopilot
// mutates inside them.
package campaign

import "github.com/sarthak567/adloom/types"

// Campaign is an advertiser-funded buy with its own budget envelope,
// carved out of the advertiser's deposited balance.
type Campaign struct {
	ID                string       `json:"id"`
	AdvertiserID      string       `json:"advertiser_id"`
	Budget            types.Amount `json:"budget"`
	BudgetRemaining   types.Amount `json:"budget_remaining"`
	FloorCPMMicros    uint64       `json:"floor_cpm_micros"`
	Variants          []Variant    `json:"variants"`
	ImpressionsServed uint64       `json:"impressions_served"`
}

// New creates a campaign with its full budget remaining.
func New(id, advertiserID string, budget types.Amount, floorCPMMicros uint64) *Campaign {
	return &Campaign{
		ID:              id,
		AdvertiserID:    advertiserID,
		Budget:          budget,
		BudgetRemaining: budget,
		FloorCPMMicros:  floorCPMMicros,
	}
}

// Variant is one creative within a campaign. Variants are appended in
// upsert order and never removed.
type Variant struct {
	VariantID        string `json:"variant_id"`
	Headline         string `json:"headline"`
	Status           string `json:"status"`
	CTRBps           uint64 `json:"ctr_bps"`
	LastMutationSlot uint64 `json:"last_mutation_slot"`
}

// UpsertVariant updates the variant with the given id in place, or
// appends a new one if no variant matches. CTR telemetry survives
// updates; only headline, status and the mutation slot change.
func (c *Campaign) UpsertVariant(variantID, headline, status string, slot uint64) {
	for i := range c.Variants {
		if c.Variants[i].VariantID == variantID {
			c.Variants[i].Headline = headline
			c.Variants[i].Status = status
			c.Variants[i].LastMutationSlot = slot
			return
		}
	}
	c.Variants = append(c.Variants, Variant{
		VariantID:        variantID,
		Headline:         headline,
		Status:           status,
		LastMutationSlot: slot,
	})
}

// Clone returns a deep copy of the campaign, variants included.
func (c *Campaign) Clone() *Campaign {
	cp := *c
	if c.Variants != nil {
		cp.Variants = make([]Variant, len(c.Variants))
		copy(cp.Variants, c.Variants)
	}
	return &cp
}
