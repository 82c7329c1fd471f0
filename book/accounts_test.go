package book

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sarthak567/adloom/advertiser"
)

func TestRegistrationDefaults(t *testing.T) {
	b := seedBook(t)

	v := b.Viewers["v1"]
	if v.Handle != "alice" {
		t.Errorf("viewer handle: got %q", v.Handle)
	}
	if !v.CreditLimit.Equal(amt("5")) {
		t.Errorf("base credit limit: got %s, want 5", v.CreditLimit)
	}

	c := b.Creators["c1"]
	if !c.AIOptimization {
		t.Error("creator should start with AI optimization enabled")
	}

	a := b.Advertisers["a1"]
	if a.AINotes != advertiser.DefaultAINotes {
		t.Errorf("ai notes: got %q", a.AINotes)
	}
	if a.AutoBidMultiplierBps != advertiser.DefaultAutoBidMultiplierBps {
		t.Errorf("bid multiplier: got %d", a.AutoBidMultiplierBps)
	}
	if a.FloorCPMMicros != 1_500 {
		t.Errorf("floor cpm: got %d, want 1500", a.FloorCPMMicros)
	}
}

func TestDuplicateRegistrations(t *testing.T) {
	b := seedBook(t)

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"viewer", func() error { return b.RegisterViewer("v1", "other") }, ErrViewerExists},
		{"creator", func() error { return b.RegisterCreator("c1", "other", "") }, ErrCreatorExists},
		{"advertiser", func() error { return b.RegisterAdvertiser("a1", "Other", 0) }, ErrAdvertiserExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if !IsConflict(err) {
				t.Error("IsConflict should match")
			}
		})
	}
}

func TestFundCampaign(t *testing.T) {
	b := seedBook(t)

	if err := b.FundCampaign("a1", amt("250")); err != nil {
		t.Fatalf("fund: %v", err)
	}
	a := b.Advertisers["a1"]
	if !a.TotalDeposited.Equal(amt("1250")) {
		t.Errorf("deposited: got %s, want 1250", a.TotalDeposited)
	}
	if !a.BudgetRemaining.Equal(amt("1250")) {
		t.Errorf("budget: got %s, want 1250", a.BudgetRemaining)
	}
	if !b.AdvertiserTVL.Equal(amt("1250")) {
		t.Errorf("tvl: got %s, want 1250", b.AdvertiserTVL)
	}

	err := b.FundCampaign("nope", amt("1"))
	if !errors.Is(err, ErrAdvertiserNotFound) {
		t.Errorf("unknown advertiser: got %v", err)
	}
}

func TestConfigureAIAgent(t *testing.T) {
	b := seedBook(t)

	if err := b.ConfigureAIAgent("a1", "aggressive evening bids", 3_000, 12_500); err != nil {
		t.Fatalf("configure: %v", err)
	}
	a := b.Advertisers["a1"]
	if a.AINotes != "aggressive evening bids" {
		t.Errorf("notes: got %q", a.AINotes)
	}
	if a.FloorCPMMicros != 3_000 {
		t.Errorf("floor: got %d", a.FloorCPMMicros)
	}
	if a.AutoBidMultiplierBps != 12_500 {
		t.Errorf("multiplier: got %d", a.AutoBidMultiplierBps)
	}

	err := b.ConfigureAIAgent("nope", "", 0, 0)
	if !errors.Is(err, ErrAdvertiserNotFound) {
		t.Errorf("unknown advertiser: got %v", err)
	}
}

func TestRegisterCampaignOrdering(t *testing.T) {
	b := seedBook(t)
	if err := b.RegisterCampaign("a1", "cmp1", amt("100"), 0); err != nil {
		t.Fatalf("register: %v", err)
	}

	// The duplicate check runs before the advertiser check.
	err := b.RegisterCampaign("nope", "cmp1", amt("100"), 0)
	if !errors.Is(err, ErrCampaignExists) {
		t.Errorf("duplicate: got %v, want %v", err, ErrCampaignExists)
	}

	err = b.RegisterCampaign("nope", "cmp2", amt("100"), 0)
	if !errors.Is(err, ErrAdvertiserNotFound) {
		t.Errorf("unknown advertiser: got %v", err)
	}
	if _, ok := b.Campaigns["cmp2"]; ok {
		t.Error("failed registration must not create the campaign")
	}
}

func TestEvolveAdVariant(t *testing.T) {
	b := seedBook(t)
	if err := b.RegisterCampaign("a1", "cmp1", amt("100"), 0); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := b.EvolveAdVariant("cmp1", "var1", "Buy now", "active"); err != nil {
		t.Fatalf("evolve: %v", err)
	}
	if err := b.EvolveAdVariant("cmp1", "var1", "Buy later", "paused"); err != nil {
		t.Fatalf("evolve update: %v", err)
	}

	c := b.Campaigns["cmp1"]
	if len(c.Variants) != 1 {
		t.Fatalf("variant count: got %d, want 1", len(c.Variants))
	}
	got := c.Variants[0]
	if got.Headline != "Buy later" || got.Status != "paused" {
		t.Errorf("variant: got %+v", got)
	}

	err := b.EvolveAdVariant("nope", "var1", "", "")
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Errorf("unknown campaign: got %v", err)
	}
}

func TestSubmitInstruction(t *testing.T) {
	b := seedBook(t)

	if err := b.SubmitInstruction("v1", "not an advertiser"); !errors.Is(err, ErrAdvertiserNotFound) {
		t.Errorf("unknown advertiser: got %v", err)
	}

	if err := b.SubmitInstruction("a1", "push gaming creatives"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := b.SubmitInstruction("a1", "pause weekend spend"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(b.Instructions) != 2 {
		t.Fatalf("instruction count: got %d, want 2", len(b.Instructions))
	}
	// Instructions borrow the current event id without advancing it, so
	// consecutive entries share one.
	if b.Instructions[0].ID != 0 || b.Instructions[1].ID != 0 {
		t.Errorf("instruction ids: got %d, %d, want 0, 0", b.Instructions[0].ID, b.Instructions[1].ID)
	}
	if b.NextEventID != 0 {
		t.Errorf("next event id advanced to %d", b.NextEventID)
	}
}

func TestInstructionLogCap(t *testing.T) {
	b := seedBook(t)

	for i := 0; i < MaxInstructionHistory+5; i++ {
		if err := b.SubmitInstruction("a1", fmt.Sprintf("directive %d", i)); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	if len(b.Instructions) != MaxInstructionHistory {
		t.Fatalf("instruction log length: got %d, want %d", len(b.Instructions), MaxInstructionHistory)
	}
	if b.Instructions[0].Text != "directive 5" {
		t.Errorf("oldest kept entry: got %q, want %q", b.Instructions[0].Text, "directive 5")
	}
}
