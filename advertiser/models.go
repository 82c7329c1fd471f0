// Package advertiser defines advertiser accounts, their AI bidding
// configuration, and the brand instructions they feed the autopilot.
package advertiser

import "github.com/sarthak567/adloom/types"

// DefaultAINotes is the autopilot placeholder every advertiser starts
// with until configure_ai_agent replaces it.
const DefaultAINotes = "Autopilot awaiting first signal."

// DefaultAutoBidMultiplierBps is the neutral bid multiplier (1.0x).
const DefaultAutoBidMultiplierBps = 10_000

// Account is a registered advertiser.
type Account struct {
	Brand                string       `json:"brand"`
	AINotes              string       `json:"ai_notes"`
	TotalDeposited       types.Amount `json:"total_deposited"`
	BudgetRemaining      types.Amount `json:"budget_remaining"`
	FloorCPMMicros       uint64       `json:"floor_cpm_micros"`
	AutoBidMultiplierBps uint64       `json:"auto_bid_multiplier_bps"`
}

// New creates an advertiser account with the autopilot defaults.
func New(brand string) *Account {
	return &Account{
		Brand:                brand,
		AINotes:              DefaultAINotes,
		AutoBidMultiplierBps: DefaultAutoBidMultiplierBps,
	}
}

// Configure replaces the AI agent settings in one step.
func (a *Account) Configure(notes string, floorCPMMicros uint64) {
	a.AINotes = notes
	a.FloorCPMMicros = floorCPMMicros
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}

// Instruction is one free-text brand directive recorded against the
// shared instruction log.
type Instruction struct {
	ID           uint64 `json:"id"`
	AdvertiserID string `json:"advertiser_id"`
	Text         string `json:"text"`
}

// TrimInstructions drops the oldest entries until the log holds at most
// max items. Order is preserved.
func TrimInstructions(log []Instruction, max int) []Instruction {
	if len(log) <= max {
		return log
	}
	return log[len(log)-max:]
}
