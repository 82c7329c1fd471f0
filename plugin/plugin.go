// Package plugin provides an extensible plugin system for adloom.
// Plugins can hook into ledger lifecycle events to extend functionality.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Registration hooks
// ──────────────────────────────────────────────────

// OnViewerRegistered is called when a viewer account is created.
type OnViewerRegistered interface {
	Plugin
	OnViewerRegistered(ctx context.Context, viewerID string) error
}

// OnCreatorRegistered is called when a creator account is created.
type OnCreatorRegistered interface {
	Plugin
	OnCreatorRegistered(ctx context.Context, creatorID string) error
}

// OnAdvertiserRegistered is called when an advertiser account is created.
type OnAdvertiserRegistered interface {
	Plugin
	OnAdvertiserRegistered(ctx context.Context, advertiserID string) error
}

// ──────────────────────────────────────────────────
// Campaign hooks
// ──────────────────────────────────────────────────

// OnCampaignFunded is called when budget is deposited for an advertiser.
type OnCampaignFunded interface {
	Plugin
	OnCampaignFunded(ctx context.Context, advertiserID, amount string) error
}

// OnCampaignRegistered is called when a campaign is created and funded.
type OnCampaignRegistered interface {
	Plugin
	OnCampaignRegistered(ctx context.Context, advertiserID, campaignID string) error
}

// OnVariantEvolved is called when a creative is upserted in a campaign.
type OnVariantEvolved interface {
	Plugin
	OnVariantEvolved(ctx context.Context, campaignID, variantID string) error
}

// OnAIAgentConfigured is called when an advertiser's autopilot settings change.
type OnAIAgentConfigured interface {
	Plugin
	OnAIAgentConfigured(ctx context.Context, advertiserID string) error
}

// OnInstructionSubmitted is called when a brand instruction is recorded.
type OnInstructionSubmitted interface {
	Plugin
	OnInstructionSubmitted(ctx context.Context, advertiserID string) error
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnRewardDistributed is called when a verified view settles.
// The event argument is a *event.AttentionEvent.
type OnRewardDistributed interface {
	Plugin
	OnRewardDistributed(ctx context.Context, evt interface{}) error
}

// ──────────────────────────────────────────────────
// Credit and loan hooks
// ──────────────────────────────────────────────────

// OnCreditRequested is called when a viewer draws on their credit line.
type OnCreditRequested interface {
	Plugin
	OnCreditRequested(ctx context.Context, viewerID, amount string) error
}

// OnCreditCleared is called when a viewer repays outstanding credit.
type OnCreditCleared interface {
	Plugin
	OnCreditCleared(ctx context.Context, viewerID, amount string) error
}

// OnLoanRequested is called when loan principal is drawn.
type OnLoanRequested interface {
	Plugin
	OnLoanRequested(ctx context.Context, viewerID, amount string) error
}

// OnLoanRepaid is called when a loan is paid down.
type OnLoanRepaid interface {
	Plugin
	OnLoanRepaid(ctx context.Context, viewerID, amount string) error
}

// ──────────────────────────────────────────────────
// Vault hooks
// ──────────────────────────────────────────────────

// OnVaultStaked is called when a creator stakes into their vault.
type OnVaultStaked interface {
	Plugin
	OnVaultStaked(ctx context.Context, creatorID, amount string) error
}

// OnVaultHarvested is called when vault yield is minted.
type OnVaultHarvested interface {
	Plugin
	OnVaultHarvested(ctx context.Context, creatorID, yield string) error
}

// ──────────────────────────────────────────────────
// Engine commit hooks
// ──────────────────────────────────────────────────

// OnSnapshotCommitted is called after an operation is applied and the
// resulting snapshot persisted.
type OnSnapshotCommitted interface {
	Plugin
	OnSnapshotCommitted(ctx context.Context, opKind string, elapsed time.Duration) error
}

// OnOperationRejected is called when an operation fails validation and
// its working copy is discarded.
type OnOperationRejected interface {
	Plugin
	OnOperationRejected(ctx context.Context, opKind string, reason error) error
}
