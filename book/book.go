// Package book implements the deterministic accounting state machine:
// one aggregate value holding every registry, log and protocol total,
// mutated only through its transition methods.
//
// Transitions validate against the receiver and mutate it in place. The
// engine in the root package applies each operation to a deep working
// copy and discards the copy when a transition fails, so callers never
// observe partial writes. The Book itself performs no I/O and reads no
// clocks; the same operation sequence always produces the same state.
package book

import (
	"github.com/sarthak567/adloom/advertiser"
	"github.com/sarthak567/adloom/campaign"
	"github.com/sarthak567/adloom/creator"
	"github.com/sarthak567/adloom/event"
	"github.com/sarthak567/adloom/loan"
	"github.com/sarthak567/adloom/types"
	"github.com/sarthak567/adloom/viewer"
)

// History caps. Oldest entries are dropped first once a log exceeds
// its cap.
const (
	MaxEventHistory       = 120
	MaxInstructionHistory = 60
)

// Book is the aggregate ledger state. All maps are keyed by the
// caller-supplied opaque entity ids.
type Book struct {
	Viewers      map[string]*viewer.Account     `json:"viewers"`
	Creators     map[string]*creator.Account    `json:"creators"`
	Advertisers  map[string]*advertiser.Account `json:"advertisers"`
	Campaigns    map[string]*campaign.Campaign  `json:"campaigns"`
	Vaults       map[string]*creator.Vault      `json:"creator_vaults"`
	Loans        map[string]*loan.Loan          `json:"viewer_loans"`
	Instructions []advertiser.Instruction       `json:"brand_instructions"`
	Events       []event.AttentionEvent         `json:"attention_events"`

	Treasury         types.Amount `json:"protocol_treasury"`
	AdvertiserTVL    types.Amount `json:"total_advertiser_value_locked"`
	TotalImpressions uint64       `json:"total_impressions"`

	// NextEventID is consumed and incremented only by verified views.
	// Variant mutations, vault slots and instruction ids read it
	// without advancing it.
	NextEventID uint64 `json:"next_event_id"`
}

// New bootstraps an empty book.
func New() *Book {
	return &Book{
		Viewers:     make(map[string]*viewer.Account),
		Creators:    make(map[string]*creator.Account),
		Advertisers: make(map[string]*advertiser.Account),
		Campaigns:   make(map[string]*campaign.Campaign),
		Vaults:      make(map[string]*creator.Vault),
		Loans:       make(map[string]*loan.Loan),
	}
}

// Clone returns a deep copy. The copy shares nothing with the
// receiver, so a failed transition on the copy leaves the original
// untouched.
func (b *Book) Clone() *Book {
	cp := &Book{
		Viewers:          make(map[string]*viewer.Account, len(b.Viewers)),
		Creators:         make(map[string]*creator.Account, len(b.Creators)),
		Advertisers:      make(map[string]*advertiser.Account, len(b.Advertisers)),
		Campaigns:        make(map[string]*campaign.Campaign, len(b.Campaigns)),
		Vaults:           make(map[string]*creator.Vault, len(b.Vaults)),
		Loans:            make(map[string]*loan.Loan, len(b.Loans)),
		Treasury:         b.Treasury,
		AdvertiserTVL:    b.AdvertiserTVL,
		TotalImpressions: b.TotalImpressions,
		NextEventID:      b.NextEventID,
	}

	for k, v := range b.Viewers {
		cp.Viewers[k] = v.Clone()
	}
	for k, v := range b.Creators {
		cp.Creators[k] = v.Clone()
	}
	for k, v := range b.Advertisers {
		cp.Advertisers[k] = v.Clone()
	}
	for k, v := range b.Campaigns {
		cp.Campaigns[k] = v.Clone()
	}
	for k, v := range b.Vaults {
		cp.Vaults[k] = v.Clone()
	}
	for k, v := range b.Loans {
		cp.Loans[k] = v.Clone()
	}

	if b.Instructions != nil {
		cp.Instructions = make([]advertiser.Instruction, len(b.Instructions))
		copy(cp.Instructions, b.Instructions)
	}
	if b.Events != nil {
		cp.Events = make([]event.AttentionEvent, len(b.Events))
		copy(cp.Events, b.Events)
	}

	return cp
}

// normalize restores the map fields after JSON decoding, where empty
// maps round-trip as nil.
func (b *Book) normalize() {
	if b.Viewers == nil {
		b.Viewers = make(map[string]*viewer.Account)
	}
	if b.Creators == nil {
		b.Creators = make(map[string]*creator.Account)
	}
	if b.Advertisers == nil {
		b.Advertisers = make(map[string]*advertiser.Account)
	}
	if b.Campaigns == nil {
		b.Campaigns = make(map[string]*campaign.Campaign)
	}
	if b.Vaults == nil {
		b.Vaults = make(map[string]*creator.Vault)
	}
	if b.Loans == nil {
		b.Loans = make(map[string]*loan.Loan)
	}
}

// Normalize makes a decoded book safe to mutate. Stores call this
// after unmarshalling a snapshot.
func (b *Book) Normalize() { b.normalize() }

func (b *Book) pushEvent(evt event.AttentionEvent) {
	b.Events = append(b.Events, evt)
	b.Events = event.Trim(b.Events, MaxEventHistory)
}

func (b *Book) pushInstruction(entry advertiser.Instruction) {
	b.Instructions = append(b.Instructions, entry)
	b.Instructions = advertiser.TrimInstructions(b.Instructions, MaxInstructionHistory)
}

// satAdd is saturating uint64 addition, used for impression counters.
func satAdd(a, b uint64) uint64 {
	if a > ^uint64(0)-b {
		return ^uint64(0)
	}
	return a + b
}
