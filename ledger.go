package adloom

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sarthak567/adloom/advertiser"
	"github.com/sarthak567/adloom/book"
	"github.com/sarthak567/adloom/campaign"
	"github.com/sarthak567/adloom/creator"
	"github.com/sarthak567/adloom/event"
	"github.com/sarthak567/adloom/id"
	"github.com/sarthak567/adloom/loan"
	"github.com/sarthak567/adloom/plugin"
	"github.com/sarthak567/adloom/store"
	"github.com/sarthak567/adloom/viewer"
)

// DefaultLedgerName is the snapshot key used when no name is configured.
const DefaultLedgerName = "default"

// Ledger is the attention-economy settlement engine. It keeps the
// authoritative book in memory, applies operations one at a time under
// a mutex, and persists a full snapshot after every successful apply.
type Ledger struct {
	store   store.SnapshotStore
	plugins *plugin.Registry
	logger  *slog.Logger
	name    string
	nowFn   func() time.Time

	mu      sync.Mutex
	book    *book.Book
	started bool
}

// New creates a new Ledger instance on top of a snapshot store.
func New(s store.SnapshotStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:   s,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		name:    DefaultLedgerName,
		nowFn:   time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithLedgerName sets the snapshot key this engine loads and saves
// under, so several ledgers can share one store.
func WithLedgerName(name string) Option {
	return func(l *Ledger) {
		if name != "" {
			l.name = name
		}
	}
}

// WithClock overrides the wall clock. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.nowFn = now
		}
	}
}

// Plugins returns the plugin registry.
func (l *Ledger) Plugins() *plugin.Registry { return l.plugins }

// Start migrates the store, loads the persisted book (or bootstraps an
// empty one), and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return nil
	}

	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	b, err := l.store.LoadBook(ctx, l.name)
	switch {
	case err == nil:
		l.book = b
	case store.IsSnapshotNotFound(err):
		l.book = book.New()
	default:
		return err
	}
	l.started = true

	l.plugins.EmitInit(ctx, l)

	l.logger.Info("ledger started",
		"name", l.name,
		"next_event_id", l.book.NextEventID,
		"viewers", len(l.book.Viewers),
		"creators", len(l.book.Creators),
		"advertisers", len(l.book.Advertisers),
	)

	return nil
}

// Stop shuts down the Ledger and closes the store.
func (l *Ledger) Stop() error {
	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	l.mu.Lock()
	l.started = false
	l.mu.Unlock()

	return l.store.Close()
}

// ──────────────────────────────────────────────────
// Operation pipeline
// ──────────────────────────────────────────────────

// Apply settles a single operation. The working copy of the book is a
// clone; it only replaces the committed book after the snapshot has
// been persisted, so a failed transition or a failed save leaves the
// ledger exactly as it was.
func (l *Ledger) Apply(ctx context.Context, op book.Op) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		return ErrNotStarted
	}

	opID := id.NewOperationID()
	start := l.nowFn()

	working := l.book.Clone()
	outcome, err := working.Apply(op)
	if err != nil {
		l.logger.Warn("operation rejected",
			"op", op.Kind(),
			"op_id", opID,
			"error", err,
		)
		l.plugins.EmitOperationRejected(ctx, op.Kind(), err)
		return err
	}

	if err := l.store.SaveBook(ctx, l.name, working); err != nil {
		l.logger.Error("snapshot save failed",
			"op", op.Kind(),
			"op_id", opID,
			"error", err,
		)
		return err
	}
	l.book = working

	elapsed := l.nowFn().Sub(start)
	l.emitApplied(ctx, op, outcome)
	l.plugins.EmitSnapshotCommitted(ctx, op.Kind(), elapsed)

	l.logger.Debug("operation applied",
		"op", op.Kind(),
		"op_id", opID,
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return nil
}

// emitApplied fires the per-operation plugin hook.
func (l *Ledger) emitApplied(ctx context.Context, op book.Op, outcome book.Outcome) {
	switch o := op.(type) {
	case book.RegisterViewer:
		l.plugins.EmitViewerRegistered(ctx, o.ViewerID)
	case book.RegisterCreator:
		l.plugins.EmitCreatorRegistered(ctx, o.CreatorID)
	case book.RegisterAdvertiser:
		l.plugins.EmitAdvertiserRegistered(ctx, o.AdvertiserID)
	case book.FundCampaign:
		l.plugins.EmitCampaignFunded(ctx, o.AdvertiserID, o.Amount)
	case book.ConfigureAIAgent:
		l.plugins.EmitAIAgentConfigured(ctx, o.AdvertiserID)
	case book.RegisterCampaign:
		l.plugins.EmitCampaignRegistered(ctx, o.AdvertiserID, o.CampaignID)
	case book.EvolveAdVariant:
		l.plugins.EmitVariantEvolved(ctx, o.CampaignID, o.VariantID)
	case book.RecordVerifiedView:
		l.plugins.EmitRewardDistributed(ctx, outcome.Event)
	case book.RequestCredit:
		l.plugins.EmitCreditRequested(ctx, o.ViewerID, o.Amount)
	case book.ClearCredit:
		l.plugins.EmitCreditCleared(ctx, o.ViewerID, o.Amount)
	case book.StakeVault:
		l.plugins.EmitVaultStaked(ctx, o.CreatorID, o.Amount)
	case book.HarvestVault:
		l.plugins.EmitVaultHarvested(ctx, o.CreatorID, outcome.Yield.String())
	case book.RequestLoan:
		l.plugins.EmitLoanRequested(ctx, o.ViewerID, o.Amount)
	case book.RepayLoan:
		l.plugins.EmitLoanRepaid(ctx, o.ViewerID, o.Amount)
	case book.SubmitInstruction:
		l.plugins.EmitInstructionSubmitted(ctx, o.AdvertiserID)
	}
}

// ──────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────

// Book returns a deep copy of the committed book.
func (l *Ledger) Book() *book.Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Clone()
}

// Totals returns the global pulse of the ledger.
func (l *Ledger) Totals() book.Totals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Totals()
}

// Viewer returns a copy of a viewer account.
func (l *Ledger) Viewer(viewerID string) (*viewer.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Viewer(viewerID)
}

// Creator returns a copy of a creator account.
func (l *Ledger) Creator(creatorID string) (*creator.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Creator(creatorID)
}

// Advertiser returns a copy of an advertiser account.
func (l *Ledger) Advertiser(advertiserID string) (*advertiser.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Advertiser(advertiserID)
}

// Campaign returns a copy of a campaign, variants included.
func (l *Ledger) Campaign(campaignID string) (*campaign.Campaign, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Campaign(campaignID)
}

// Vault returns a copy of a creator's vault.
func (l *Ledger) Vault(creatorID string) (*creator.Vault, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Vault(creatorID)
}

// Loan returns a copy of a viewer's loan record.
func (l *Ledger) Loan(viewerID string) (*loan.Loan, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Loan(viewerID)
}

// Leaderboard returns up to n viewers ranked by attention score.
func (l *Ledger) Leaderboard(n int) []book.LeaderboardEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Leaderboard(n)
}

// RecentEvents returns up to n attention events, newest first.
func (l *Ledger) RecentEvents(n int) []event.AttentionEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.RecentEvents(n)
}

// RecentInstructions returns up to n brand instructions, newest first.
func (l *Ledger) RecentInstructions(n int) []advertiser.Instruction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.RecentInstructions(n)
}
