package book

import (
	"errors"
	"testing"

	"github.com/sarthak567/adloom/types"
)

func amt(s string) types.Amount { return types.MustParseAmount(s) }

// seedBook returns a book with one viewer, one creator, and one
// advertiser funded with 1000 units.
func seedBook(t *testing.T) *Book {
	t.Helper()

	b := New()
	if err := b.RegisterViewer("v1", "alice"); err != nil {
		t.Fatalf("register viewer: %v", err)
	}
	if err := b.RegisterCreator("c1", "bob", "gaming"); err != nil {
		t.Fatalf("register creator: %v", err)
	}
	if err := b.RegisterAdvertiser("a1", "Acme", 1_500); err != nil {
		t.Fatalf("register advertiser: %v", err)
	}
	if err := b.FundCampaign("a1", amt("1000")); err != nil {
		t.Fatalf("fund: %v", err)
	}
	return b
}

func TestRecordVerifiedViewSplits(t *testing.T) {
	b := seedBook(t)

	evt, err := b.RecordVerifiedView("", "a1", "c1", "v1", 5, amt("10"))
	if err != nil {
		t.Fatalf("record view: %v", err)
	}

	// Reward 50 splits 55/35/10 bps with floor division: creator 27,
	// viewer 17, protocol keeps the remainder 6.
	if !evt.Reward.Equal(amt("50")) {
		t.Errorf("reward: got %s, want 50", evt.Reward)
	}
	if !evt.CreatorShare.Equal(amt("27")) {
		t.Errorf("creator share: got %s, want 27", evt.CreatorShare)
	}
	if !evt.ViewerShare.Equal(amt("17")) {
		t.Errorf("viewer share: got %s, want 17", evt.ViewerShare)
	}
	if !evt.ProtocolShare.Equal(amt("6")) {
		t.Errorf("protocol share: got %s, want 6", evt.ProtocolShare)
	}
	if evt.ID != 0 {
		t.Errorf("event id: got %d, want 0", evt.ID)
	}
	if evt.CampaignID != "" {
		t.Errorf("campaign id: got %q, want empty", evt.CampaignID)
	}

	adv := b.Advertisers["a1"]
	if !adv.BudgetRemaining.Equal(amt("950")) {
		t.Errorf("advertiser budget: got %s, want 950", adv.BudgetRemaining)
	}
	if !b.AdvertiserTVL.Equal(amt("950")) {
		t.Errorf("tvl: got %s, want 950", b.AdvertiserTVL)
	}
	if !b.Treasury.Equal(amt("6")) {
		t.Errorf("treasury: got %s, want 6", b.Treasury)
	}

	v := b.Viewers["v1"]
	if !v.TotalEarned.Equal(amt("17")) {
		t.Errorf("viewer earned: got %s, want 17", v.TotalEarned)
	}
	if v.AttentionScore != 5 || v.LifetimeImpressions != 5 {
		t.Errorf("viewer counters: score %d, impressions %d, want 5/5", v.AttentionScore, v.LifetimeImpressions)
	}

	cr := b.Creators["c1"]
	if !cr.TotalEarned.Equal(amt("27")) {
		t.Errorf("creator earned: got %s, want 27", cr.TotalEarned)
	}
	if cr.ImpressionsServed != 5 {
		t.Errorf("creator impressions: got %d, want 5", cr.ImpressionsServed)
	}

	if b.TotalImpressions != 5 {
		t.Errorf("total impressions: got %d, want 5", b.TotalImpressions)
	}
	if b.NextEventID != 1 {
		t.Errorf("next event id: got %d, want 1", b.NextEventID)
	}
}

func TestRecordVerifiedViewWithCampaign(t *testing.T) {
	b := seedBook(t)
	if err := b.RegisterCampaign("a1", "cmp1", amt("500"), 2_000); err != nil {
		t.Fatalf("register campaign: %v", err)
	}

	// Registering the campaign also funds the advertiser: 1000 + 500.
	if !b.Advertisers["a1"].BudgetRemaining.Equal(amt("1500")) {
		t.Fatalf("advertiser budget after campaign: got %s, want 1500", b.Advertisers["a1"].BudgetRemaining)
	}

	evt, err := b.RecordVerifiedView("cmp1", "a1", "c1", "v1", 5, amt("10"))
	if err != nil {
		t.Fatalf("record view: %v", err)
	}
	if evt.CampaignID != "cmp1" {
		t.Errorf("campaign id: got %q, want cmp1", evt.CampaignID)
	}

	c := b.Campaigns["cmp1"]
	if !c.BudgetRemaining.Equal(amt("450")) {
		t.Errorf("campaign budget: got %s, want 450", c.BudgetRemaining)
	}
	if c.ImpressionsServed != 5 {
		t.Errorf("campaign impressions: got %d, want 5", c.ImpressionsServed)
	}
	if !b.Advertisers["a1"].BudgetRemaining.Equal(amt("1450")) {
		t.Errorf("advertiser budget: got %s, want 1450", b.Advertisers["a1"].BudgetRemaining)
	}
}

func TestRecordVerifiedViewAutoRepay(t *testing.T) {
	b := seedBook(t)
	if err := b.RequestCredit("v1", amt("10")); err != nil {
		t.Fatalf("request credit: %v", err)
	}

	evt, err := b.RecordVerifiedView("", "a1", "c1", "v1", 5, amt("10"))
	if err != nil {
		t.Fatalf("record view: %v", err)
	}

	// Viewer share 17, repay cap 40% = 6, so 6 goes to credit and the
	// viewer nets 11. The repaid portion lands in the treasury on top
	// of the protocol share.
	if !evt.ViewerShare.Equal(amt("11")) {
		t.Errorf("viewer share: got %s, want 11", evt.ViewerShare)
	}
	if !evt.ProtocolShare.Equal(amt("12")) {
		t.Errorf("protocol share: got %s, want 12", evt.ProtocolShare)
	}

	v := b.Viewers["v1"]
	if !v.OutstandingCredit.Equal(amt("4")) {
		t.Errorf("outstanding credit: got %s, want 4", v.OutstandingCredit)
	}
	if !v.TotalEarned.Equal(amt("11")) {
		t.Errorf("viewer earned: got %s, want 11", v.TotalEarned)
	}
	if !b.Treasury.Equal(amt("12")) {
		t.Errorf("treasury: got %s, want 12", b.Treasury)
	}
}

func TestRecordVerifiedViewRemainderToProtocol(t *testing.T) {
	b := seedBook(t)

	// Reward 1 floors both shares to zero; the protocol keeps it all.
	evt, err := b.RecordVerifiedView("", "a1", "c1", "v1", 1, amt("1"))
	if err != nil {
		t.Fatalf("record view: %v", err)
	}
	if !evt.CreatorShare.IsZero() || !evt.ViewerShare.IsZero() {
		t.Errorf("shares: got creator %s viewer %s, want 0/0", evt.CreatorShare, evt.ViewerShare)
	}
	if !evt.ProtocolShare.Equal(amt("1")) {
		t.Errorf("protocol share: got %s, want 1", evt.ProtocolShare)
	}
}

func TestRecordVerifiedViewErrors(t *testing.T) {
	tests := []struct {
		name    string
		run     func(b *Book) error
		wantErr error
	}{
		{
			"zero attention",
			func(b *Book) error {
				_, err := b.RecordVerifiedView("", "a1", "c1", "v1", 0, amt("10"))
				return err
			},
			ErrZeroAttention,
		},
		{
			"reward overflow",
			func(b *Book) error {
				huge := amt("57896044618658097711785492504343953926634992332820282019728792003956564819968")
				_, err := b.RecordVerifiedView("", "a1", "c1", "v1", 3, huge)
				return err
			},
			ErrRewardOverflow,
		},
		{
			"unknown campaign",
			func(b *Book) error {
				_, err := b.RecordVerifiedView("nope", "a1", "c1", "v1", 1, amt("1"))
				return err
			},
			ErrCampaignNotFound,
		},
		{
			"unknown advertiser",
			func(b *Book) error {
				_, err := b.RecordVerifiedView("", "nope", "c1", "v1", 1, amt("1"))
				return err
			},
			ErrAdvertiserNotFound,
		},
		{
			"unknown creator",
			func(b *Book) error {
				_, err := b.RecordVerifiedView("", "a1", "nope", "v1", 1, amt("1"))
				return err
			},
			ErrCreatorNotFound,
		},
		{
			"unknown viewer",
			func(b *Book) error {
				_, err := b.RecordVerifiedView("", "a1", "c1", "nope", 1, amt("1"))
				return err
			},
			ErrViewerNotFound,
		},
		{
			"advertiser budget exhausted",
			func(b *Book) error {
				_, err := b.RecordVerifiedView("", "a1", "c1", "v1", 1, amt("2000"))
				return err
			},
			ErrInsufficientAdvertiserBudget,
		},
		{
			"campaign budget exhausted",
			func(b *Book) error {
				if err := b.RegisterCampaign("a1", "cmp1", amt("10"), 0); err != nil {
					return err
				}
				_, err := b.RecordVerifiedView("cmp1", "a1", "c1", "v1", 1, amt("50"))
				return err
			},
			ErrInsufficientCampaignBudget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := seedBook(t)
			err := tt.run(b)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEventLogCap(t *testing.T) {
	b := seedBook(t)
	if err := b.FundCampaign("a1", amt("1000000")); err != nil {
		t.Fatalf("fund: %v", err)
	}

	for i := 0; i < MaxEventHistory+5; i++ {
		if _, err := b.RecordVerifiedView("", "a1", "c1", "v1", 1, amt("10")); err != nil {
			t.Fatalf("view %d: %v", i, err)
		}
	}

	if len(b.Events) != MaxEventHistory {
		t.Fatalf("event log length: got %d, want %d", len(b.Events), MaxEventHistory)
	}
	// Oldest entries drop first; event ids keep counting.
	if b.Events[0].ID != 5 {
		t.Errorf("oldest event id: got %d, want 5", b.Events[0].ID)
	}
	if b.NextEventID != uint64(MaxEventHistory+5) {
		t.Errorf("next event id: got %d, want %d", b.NextEventID, MaxEventHistory+5)
	}
}
