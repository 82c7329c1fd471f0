package adloom_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	adloom "github.com/sarthak567/adloom"
	"github.com/sarthak567/adloom/book"
	"github.com/sarthak567/adloom/store/memory"
)

// recorderPlugin captures hook invocations for assertions.
type recorderPlugin struct {
	mu       sync.Mutex
	viewers  []string
	rewards  int
	rejected []string
}

func (p *recorderPlugin) Name() string { return "test-recorder" }

func (p *recorderPlugin) OnViewerRegistered(_ context.Context, viewerID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewers = append(p.viewers, viewerID)
	return nil
}

func (p *recorderPlugin) OnRewardDistributed(_ context.Context, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rewards++
	return nil
}

func (p *recorderPlugin) OnOperationRejected(_ context.Context, opKind string, _ error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejected = append(p.rejected, opKind)
	return nil
}

func startLedger(t *testing.T, s *memory.Store, opts ...adloom.Option) *adloom.Ledger {
	t.Helper()
	l := adloom.New(s, opts...)
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return l
}

func mustApply(t *testing.T, l *adloom.Ledger, ops ...book.Op) {
	t.Helper()
	ctx := context.Background()
	for _, op := range ops {
		if err := l.Apply(ctx, op); err != nil {
			t.Fatalf("apply %s: %v", op.Kind(), err)
		}
	}
}

func TestLedgerEndToEnd(t *testing.T) {
	s := memory.New()
	rec := &recorderPlugin{}
	l := startLedger(t, s, adloom.WithPlugin(rec))

	mustApply(t, l,
		book.RegisterViewer{ViewerID: "v1", Handle: "alice"},
		book.RegisterCreator{CreatorID: "c1", Handle: "bob", Category: "gaming"},
		book.RegisterAdvertiser{AdvertiserID: "a1", Brand: "Acme", FloorCPMMicros: 1_500},
		book.FundCampaign{AdvertiserID: "a1", Amount: "1000"},
		book.RegisterCampaign{AdvertiserID: "a1", CampaignID: "cmp1", Budget: "500", FloorCPMMicros: 2_000},
		book.RecordVerifiedView{
			CampaignID: "cmp1", AdvertiserID: "a1", CreatorID: "c1", ViewerID: "v1",
			AttnUnits: 5, RewardPerUnit: "10",
		},
	)

	totals := l.Totals()
	if totals.Viewers != 1 || totals.Creators != 1 || totals.Advertisers != 1 || totals.Campaigns != 1 {
		t.Errorf("totals: %+v", totals)
	}
	if totals.Treasury.String() != "6" {
		t.Errorf("treasury: got %s, want 6", totals.Treasury)
	}
	if totals.TotalImpressions != 5 {
		t.Errorf("impressions: got %d, want 5", totals.TotalImpressions)
	}

	v, ok := l.Viewer("v1")
	if !ok {
		t.Fatal("viewer not found")
	}
	if v.TotalEarned.String() != "17" {
		t.Errorf("viewer earned: got %s, want 17", v.TotalEarned)
	}

	events := l.RecentEvents(10)
	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	if events[0].CreatorShare.String() != "27" {
		t.Errorf("creator share: got %s, want 27", events[0].CreatorShare)
	}

	top := l.Leaderboard(5)
	if len(top) != 1 || top[0].ViewerID != "v1" {
		t.Errorf("leaderboard: %+v", top)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.viewers) != 1 || rec.viewers[0] != "v1" {
		t.Errorf("viewer hook: %v", rec.viewers)
	}
	if rec.rewards != 1 {
		t.Errorf("reward hook: got %d, want 1", rec.rewards)
	}
}

func TestLedgerRejectionLeavesStateUntouched(t *testing.T) {
	s := memory.New()
	rec := &recorderPlugin{}
	l := startLedger(t, s, adloom.WithPlugin(rec))

	mustApply(t, l,
		book.RegisterViewer{ViewerID: "v1", Handle: "alice"},
		book.RegisterCreator{CreatorID: "c1", Handle: "bob", Category: ""},
		book.RegisterAdvertiser{AdvertiserID: "a1", Brand: "Acme"},
		book.FundCampaign{AdvertiserID: "a1", Amount: "10"},
	)
	before := l.Totals()

	// Reward 50 exceeds the advertiser's 10 budget; nothing may change.
	err := l.Apply(context.Background(), book.RecordVerifiedView{
		AdvertiserID: "a1", CreatorID: "c1", ViewerID: "v1",
		AttnUnits: 5, RewardPerUnit: "10",
	})
	if !errors.Is(err, adloom.ErrInsufficientAdvertiserBudget) {
		t.Fatalf("got %v, want %v", err, adloom.ErrInsufficientAdvertiserBudget)
	}

	after := l.Totals()
	if after != before {
		t.Errorf("state changed on rejection: before %+v, after %+v", before, after)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.rejected) != 1 || rec.rejected[0] != "record_verified_view" {
		t.Errorf("rejection hook: %v", rec.rejected)
	}
}

func TestLedgerPersistsAcrossRestarts(t *testing.T) {
	s := memory.New()

	l := startLedger(t, s)
	mustApply(t, l,
		book.RegisterViewer{ViewerID: "v1", Handle: "alice"},
		book.RegisterCreator{CreatorID: "c1", Handle: "bob", Category: ""},
		book.RegisterAdvertiser{AdvertiserID: "a1", Brand: "Acme"},
		book.FundCampaign{AdvertiserID: "a1", Amount: "1000"},
		book.RecordVerifiedView{
			AdvertiserID: "a1", CreatorID: "c1", ViewerID: "v1",
			AttnUnits: 5, RewardPerUnit: "10",
		},
	)

	// A second engine over the same store resumes from the snapshot.
	revived := startLedger(t, s)
	totals := revived.Totals()
	if totals.Viewers != 1 {
		t.Errorf("viewers after restart: got %d, want 1", totals.Viewers)
	}
	if totals.Treasury.String() != "6" {
		t.Errorf("treasury after restart: got %s, want 6", totals.Treasury)
	}

	// Event ids continue where the first engine stopped.
	if err := revived.Apply(context.Background(), book.RecordVerifiedView{
		AdvertiserID: "a1", CreatorID: "c1", ViewerID: "v1",
		AttnUnits: 1, RewardPerUnit: "10",
	}); err != nil {
		t.Fatalf("apply on revived: %v", err)
	}
	events := revived.RecentEvents(1)
	if len(events) != 1 || events[0].ID != 1 {
		t.Errorf("event id after restart: %+v", events)
	}
}

func TestLedgerNamesAreIndependent(t *testing.T) {
	s := memory.New()

	main := startLedger(t, s, adloom.WithLedgerName("main"))
	side := startLedger(t, s, adloom.WithLedgerName("side"))

	mustApply(t, main, book.RegisterViewer{ViewerID: "v1", Handle: "alice"})

	if side.Totals().Viewers != 0 {
		t.Error("ledgers must not share snapshots")
	}
}

func TestLedgerApplyBeforeStart(t *testing.T) {
	l := adloom.New(memory.New())
	err := l.Apply(context.Background(), book.RegisterViewer{ViewerID: "v1", Handle: "alice"})
	if !errors.Is(err, adloom.ErrNotStarted) {
		t.Errorf("got %v, want %v", err, adloom.ErrNotStarted)
	}
}

func TestLedgerErrorHelpers(t *testing.T) {
	l := startLedger(t, memory.New())
	ctx := context.Background()

	err := l.Apply(ctx, book.FundCampaign{AdvertiserID: "nope", Amount: "1"})
	if !adloom.IsNotFound(err) {
		t.Errorf("IsNotFound should match %v", err)
	}

	mustApply(t, l, book.RegisterViewer{ViewerID: "v1", Handle: "alice"})
	err = l.Apply(ctx, book.RegisterViewer{ViewerID: "v1", Handle: "again"})
	if !adloom.IsConflict(err) {
		t.Errorf("IsConflict should match %v", err)
	}
}
