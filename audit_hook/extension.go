// Package audithook bridges ledger lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sarthak567/adloom/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                 = (*Extension)(nil)
	_ plugin.OnViewerRegistered     = (*Extension)(nil)
	_ plugin.OnCreatorRegistered    = (*Extension)(nil)
	_ plugin.OnAdvertiserRegistered = (*Extension)(nil)
	_ plugin.OnCampaignFunded       = (*Extension)(nil)
	_ plugin.OnCampaignRegistered   = (*Extension)(nil)
	_ plugin.OnVariantEvolved       = (*Extension)(nil)
	_ plugin.OnAIAgentConfigured    = (*Extension)(nil)
	_ plugin.OnInstructionSubmitted = (*Extension)(nil)
	_ plugin.OnRewardDistributed    = (*Extension)(nil)
	_ plugin.OnCreditRequested      = (*Extension)(nil)
	_ plugin.OnCreditCleared        = (*Extension)(nil)
	_ plugin.OnLoanRequested        = (*Extension)(nil)
	_ plugin.OnLoanRepaid           = (*Extension)(nil)
	_ plugin.OnVaultStaked          = (*Extension)(nil)
	_ plugin.OnVaultHarvested       = (*Extension)(nil)
	_ plugin.OnOperationRejected    = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly — callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges ledger lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Account lifecycle hooks
// ──────────────────────────────────────────────────

// OnViewerRegistered implements plugin.OnViewerRegistered.
func (e *Extension) OnViewerRegistered(ctx context.Context, viewerID string) error {
	return e.record(ctx, ActionViewerRegistered, SeverityInfo, OutcomeSuccess,
		ResourceViewer, viewerID, CategoryAccount, nil,
		"viewer_id", viewerID,
	)
}

// OnCreatorRegistered implements plugin.OnCreatorRegistered.
func (e *Extension) OnCreatorRegistered(ctx context.Context, creatorID string) error {
	return e.record(ctx, ActionCreatorRegistered, SeverityInfo, OutcomeSuccess,
		ResourceCreator, creatorID, CategoryAccount, nil,
		"creator_id", creatorID,
	)
}

// OnAdvertiserRegistered implements plugin.OnAdvertiserRegistered.
func (e *Extension) OnAdvertiserRegistered(ctx context.Context, advertiserID string) error {
	return e.record(ctx, ActionAdvertiserRegistered, SeverityInfo, OutcomeSuccess,
		ResourceAdvertiser, advertiserID, CategoryAccount, nil,
		"advertiser_id", advertiserID,
	)
}

// ──────────────────────────────────────────────────
// Campaign lifecycle hooks
// ──────────────────────────────────────────────────

// OnCampaignFunded implements plugin.OnCampaignFunded.
func (e *Extension) OnCampaignFunded(ctx context.Context, advertiserID, amount string) error {
	return e.record(ctx, ActionCampaignFunded, SeverityInfo, OutcomeSuccess,
		ResourceAdvertiser, advertiserID, CategoryCampaign, nil,
		"advertiser_id", advertiserID,
		"amount", amount,
	)
}

// OnCampaignRegistered implements plugin.OnCampaignRegistered.
func (e *Extension) OnCampaignRegistered(ctx context.Context, advertiserID, campaignID string) error {
	return e.record(ctx, ActionCampaignRegistered, SeverityInfo, OutcomeSuccess,
		ResourceCampaign, campaignID, CategoryCampaign, nil,
		"advertiser_id", advertiserID,
		"campaign_id", campaignID,
	)
}

// OnVariantEvolved implements plugin.OnVariantEvolved.
func (e *Extension) OnVariantEvolved(ctx context.Context, campaignID, variantID string) error {
	return e.record(ctx, ActionVariantEvolved, SeverityInfo, OutcomeSuccess,
		ResourceCampaign, campaignID, CategoryCampaign, nil,
		"campaign_id", campaignID,
		"variant_id", variantID,
	)
}

// OnAIAgentConfigured implements plugin.OnAIAgentConfigured.
func (e *Extension) OnAIAgentConfigured(ctx context.Context, advertiserID string) error {
	return e.record(ctx, ActionAIAgentConfigured, SeverityInfo, OutcomeSuccess,
		ResourceAdvertiser, advertiserID, CategoryCampaign, nil,
		"advertiser_id", advertiserID,
	)
}

// OnInstructionSubmitted implements plugin.OnInstructionSubmitted.
func (e *Extension) OnInstructionSubmitted(ctx context.Context, advertiserID string) error {
	return e.record(ctx, ActionInstructionSubmitted, SeverityInfo, OutcomeSuccess,
		ResourceAdvertiser, advertiserID, CategoryCampaign, nil,
		"advertiser_id", advertiserID,
	)
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnRewardDistributed implements plugin.OnRewardDistributed.
func (e *Extension) OnRewardDistributed(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionRewardDistributed, SeverityInfo, OutcomeSuccess,
		ResourceOperation, "", CategorySettlement, nil,
		"event", "reward_distributed",
	)
}

// ──────────────────────────────────────────────────
// Credit lifecycle hooks
// ──────────────────────────────────────────────────

// OnCreditRequested implements plugin.OnCreditRequested.
func (e *Extension) OnCreditRequested(ctx context.Context, viewerID, amount string) error {
	return e.record(ctx, ActionCreditRequested, SeverityInfo, OutcomeSuccess,
		ResourceViewer, viewerID, CategoryCredit, nil,
		"viewer_id", viewerID,
		"amount", amount,
	)
}

// OnCreditCleared implements plugin.OnCreditCleared.
func (e *Extension) OnCreditCleared(ctx context.Context, viewerID, amount string) error {
	return e.record(ctx, ActionCreditCleared, SeverityInfo, OutcomeSuccess,
		ResourceViewer, viewerID, CategoryCredit, nil,
		"viewer_id", viewerID,
		"amount", amount,
	)
}

// OnLoanRequested implements plugin.OnLoanRequested.
func (e *Extension) OnLoanRequested(ctx context.Context, viewerID, amount string) error {
	return e.record(ctx, ActionLoanRequested, SeverityInfo, OutcomeSuccess,
		ResourceLoan, viewerID, CategoryCredit, nil,
		"viewer_id", viewerID,
		"amount", amount,
	)
}

// OnLoanRepaid implements plugin.OnLoanRepaid.
func (e *Extension) OnLoanRepaid(ctx context.Context, viewerID, amount string) error {
	return e.record(ctx, ActionLoanRepaid, SeverityInfo, OutcomeSuccess,
		ResourceLoan, viewerID, CategoryCredit, nil,
		"viewer_id", viewerID,
		"amount", amount,
	)
}

// ──────────────────────────────────────────────────
// Vault lifecycle hooks
// ──────────────────────────────────────────────────

// OnVaultStaked implements plugin.OnVaultStaked.
func (e *Extension) OnVaultStaked(ctx context.Context, creatorID, amount string) error {
	return e.record(ctx, ActionVaultStaked, SeverityInfo, OutcomeSuccess,
		ResourceVault, creatorID, CategoryVault, nil,
		"creator_id", creatorID,
		"amount", amount,
	)
}

// OnVaultHarvested implements plugin.OnVaultHarvested.
func (e *Extension) OnVaultHarvested(ctx context.Context, creatorID, yield string) error {
	return e.record(ctx, ActionVaultHarvested, SeverityInfo, OutcomeSuccess,
		ResourceVault, creatorID, CategoryVault, nil,
		"creator_id", creatorID,
		"yield", yield,
	)
}

// ──────────────────────────────────────────────────
// Engine hooks
// ──────────────────────────────────────────────────

// OnOperationRejected implements plugin.OnOperationRejected.
func (e *Extension) OnOperationRejected(ctx context.Context, opKind string, reason error) error {
	return e.record(ctx, ActionOperationRejected, SeverityWarning, OutcomeFailure,
		ResourceOperation, opKind, CategoryEngine, reason,
		"op", opKind,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
