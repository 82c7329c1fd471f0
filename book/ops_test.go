package book

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestOpEnvelopeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		op   Op
	}{
		{"register viewer", RegisterViewer{ViewerID: "v1", Handle: "alice"}},
		{"fund campaign", FundCampaign{AdvertiserID: "a1", Amount: "1000"}},
		{"register campaign", RegisterCampaign{AdvertiserID: "a1", CampaignID: "cmp1", Budget: "500", FloorCPMMicros: 2_000}},
		{"record view", RecordVerifiedView{CampaignID: "cmp1", AdvertiserID: "a1", CreatorID: "c1", ViewerID: "v1", AttnUnits: 5, RewardPerUnit: "10"}},
		{"harvest", HarvestVault{CreatorID: "c1"}},
		{"loan", RequestLoan{ViewerID: "v1", Amount: "50"}},
		{"instruction", SubmitInstruction{AdvertiserID: "a1", Instruction: "push gaming"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalOp(tt.op)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var env struct {
				Kind string `json:"kind"`
			}
			if err := json.Unmarshal(data, &env); err != nil {
				t.Fatalf("envelope: %v", err)
			}
			if env.Kind != tt.op.Kind() {
				t.Errorf("kind: got %q, want %q", env.Kind, tt.op.Kind())
			}

			decoded, err := UnmarshalOp(data)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if decoded != tt.op {
				t.Errorf("round trip: got %#v, want %#v", decoded, tt.op)
			}
		})
	}
}

func TestUnmarshalOpUnknownKind(t *testing.T) {
	_, err := UnmarshalOp([]byte(`{"kind":"mint_tokens","payload":{}}`))
	if err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLoanKindsMatchWireNames(t *testing.T) {
	if got := (RequestLoan{}).Kind(); got != "request_afi_loan" {
		t.Errorf("request kind: got %q", got)
	}
	if got := (RepayLoan{}).Kind(); got != "repay_afi_loan" {
		t.Errorf("repay kind: got %q", got)
	}
}

func TestApplyDispatch(t *testing.T) {
	b := New()

	ops := []Op{
		RegisterViewer{ViewerID: "v1", Handle: "alice"},
		RegisterCreator{CreatorID: "c1", Handle: "bob", Category: "gaming"},
		RegisterAdvertiser{AdvertiserID: "a1", Brand: "Acme", FloorCPMMicros: 1_500},
		FundCampaign{AdvertiserID: "a1", Amount: "1000"},
		RegisterCampaign{AdvertiserID: "a1", CampaignID: "cmp1", Budget: "500"},
		EvolveAdVariant{CampaignID: "cmp1", VariantID: "var1", Headline: "Buy now", Status: "active"},
		ConfigureAIAgent{AdvertiserID: "a1", AINotes: "steady", FloorCPMMicros: 2_000, BidMultiplierBps: 11_000},
		SubmitInstruction{AdvertiserID: "a1", Instruction: "focus weekends"},
	}
	for _, op := range ops {
		if _, err := b.Apply(op); err != nil {
			t.Fatalf("apply %s: %v", op.Kind(), err)
		}
	}

	outcome, err := b.Apply(RecordVerifiedView{
		CampaignID: "cmp1", AdvertiserID: "a1", CreatorID: "c1", ViewerID: "v1",
		AttnUnits: 5, RewardPerUnit: "10",
	})
	if err != nil {
		t.Fatalf("apply view: %v", err)
	}
	if outcome.Event == nil {
		t.Fatal("view outcome must carry the attention event")
	}
	if !outcome.Event.Reward.Equal(amt("50")) {
		t.Errorf("event reward: got %s, want 50", outcome.Event.Reward)
	}

	if _, err := b.Apply(StakeVault{CreatorID: "c1", Amount: "200"}); err != nil {
		t.Fatalf("apply stake: %v", err)
	}
	outcome, err = b.Apply(HarvestVault{CreatorID: "c1"})
	if err != nil {
		t.Fatalf("apply harvest: %v", err)
	}
	if !outcome.Harvested {
		t.Error("harvest outcome must be flagged")
	}
	if !outcome.Yield.Equal(amt("2")) {
		t.Errorf("yield: got %s, want 2", outcome.Yield)
	}
}

func TestApplyInvalidAmount(t *testing.T) {
	b := New()
	if err := b.RegisterAdvertiser("a1", "Acme", 0); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []Op{
		FundCampaign{AdvertiserID: "a1", Amount: "not-a-number"},
		FundCampaign{AdvertiserID: "a1", Amount: "-5"},
		FundCampaign{AdvertiserID: "a1", Amount: ""},
	}
	for _, op := range tests {
		if _, err := b.Apply(op); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %q: got %v, want %v", op.(FundCampaign).Amount, err, ErrInvalidAmount)
		}
	}
}
