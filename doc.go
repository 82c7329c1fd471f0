// Package adloom provides a deterministic accounting engine for an
// attention-economy marketplace.
//
// Adloom is designed as a library, not a service. Import it directly
// into your Go application and drive it with operations. It provides:
//
//   - Verified-view settlement with fixed viewer/creator/protocol splits
//   - Advertiser budgets, campaigns, and ad-variant evolution
//   - Viewer micro-credit with score-derived limits and auto-repay
//   - Creator staking vaults with compounding monthly yield
//   - Viewer loans with settle-on-zero status tracking
//   - Whole-book snapshot persistence (memory, SQLite, Postgres, Mongo)
//   - Pluggable hooks for every operation via the plugin registry
//
// # Quick Start
//
// Create a ledger instance with your preferred store:
//
//	import (
//	    "github.com/sarthak567/adloom"
//	    "github.com/sarthak567/adloom/store/memory"
//	)
//
//	l := adloom.New(memory.New())
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Core Concepts
//
// Every state change is an operation from a closed set. Operations are
// plain structs that also round-trip through a JSON envelope:
//
//	err := l.Apply(ctx, book.RegisterViewer{ViewerID: "v1", Handle: "alice"})
//
// A verified view settles the full money flow in one step: the
// campaign and advertiser budgets are debited, the reward is split
// between creator, viewer, and protocol treasury, and outstanding
// viewer credit is auto-repaid out of the viewer share:
//
//	err := l.Apply(ctx, book.RecordVerifiedView{
//	    CampaignID:    "cmp1",
//	    AdvertiserID:  "a1",
//	    CreatorID:     "c1",
//	    ViewerID:      "v1",
//	    AttnUnits:     5,
//	    RewardPerUnit: "10",
//	})
//
// Queries read the committed book:
//
//	totals := l.Totals()
//	top := l.Leaderboard(5)
//
// # Determinism
//
// All monetary calculations use 256-bit unsigned integer arithmetic;
// there is no floating point anywhere in the settlement path. Applying
// the same operations in the same order always produces the same
// snapshot. Operations settle atomically: a rejected operation leaves
// no partial writes behind.
//
// # Integration
//
// Adloom integrates with the Forgery ecosystem:
//
//   - Forge: runs the engine as an application extension
//   - Grove: snapshot persistence for SQLite, Postgres, and Mongo
//   - Vessel: dependency injection for the engine and its store
//
// # TypeID
//
// Operations and snapshot revisions use TypeID for globally unique,
// type-safe identifiers:
//
//	op_01h2xcejqtf2nbrexx3vqjhp41   // Operation ID
//	rev_01h455vb4pex5vsknk084sn02q  // Snapshot revision ID
//
// TypeIDs are K-sortable, providing natural time-ordering of applied
// operations and saved revisions.
package adloom
