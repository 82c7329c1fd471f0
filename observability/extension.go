// Package observability provides a metrics extension for the ledger that
// records lifecycle event counts via go-utils MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/sarthak567/adloom/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                 = (*MetricsExtension)(nil)
	_ plugin.OnInit                 = (*MetricsExtension)(nil)
	_ plugin.OnViewerRegistered     = (*MetricsExtension)(nil)
	_ plugin.OnCreatorRegistered    = (*MetricsExtension)(nil)
	_ plugin.OnAdvertiserRegistered = (*MetricsExtension)(nil)
	_ plugin.OnCampaignFunded       = (*MetricsExtension)(nil)
	_ plugin.OnCampaignRegistered   = (*MetricsExtension)(nil)
	_ plugin.OnVariantEvolved       = (*MetricsExtension)(nil)
	_ plugin.OnRewardDistributed    = (*MetricsExtension)(nil)
	_ plugin.OnCreditRequested      = (*MetricsExtension)(nil)
	_ plugin.OnCreditCleared        = (*MetricsExtension)(nil)
	_ plugin.OnLoanRequested        = (*MetricsExtension)(nil)
	_ plugin.OnLoanRepaid           = (*MetricsExtension)(nil)
	_ plugin.OnVaultStaked          = (*MetricsExtension)(nil)
	_ plugin.OnVaultHarvested       = (*MetricsExtension)(nil)
	_ plugin.OnSnapshotCommitted    = (*MetricsExtension)(nil)
	_ plugin.OnOperationRejected    = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a ledger plugin to automatically track settlement metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Account metrics
	ViewersRegistered     Counter
	CreatorsRegistered    Counter
	AdvertisersRegistered Counter

	// Campaign metrics
	CampaignsFunded     Counter
	CampaignsRegistered Counter
	VariantsEvolved     Counter

	// Settlement metrics
	RewardsDistributed Counter
	SettleLatency      Histogram

	// Credit metrics
	CreditRequests Counter
	CreditCleared  Counter
	LoanRequests   Counter
	LoanRepayments Counter

	// Vault metrics
	VaultStakes   Counter
	VaultHarvests Counter

	// Engine metrics
	SnapshotsCommitted Counter
	OperationsRejected Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Account metrics
		ViewersRegistered:     factory.Counter("adloom.viewer.registered"),
		CreatorsRegistered:    factory.Counter("adloom.creator.registered"),
		AdvertisersRegistered: factory.Counter("adloom.advertiser.registered"),

		// Campaign metrics
		CampaignsFunded:     factory.Counter("adloom.campaign.funded"),
		CampaignsRegistered: factory.Counter("adloom.campaign.registered"),
		VariantsEvolved:     factory.Counter("adloom.variant.evolved"),

		// Settlement metrics
		RewardsDistributed: factory.Counter("adloom.reward.distributed"),
		SettleLatency:      factory.Histogram("adloom.settle.latency_ms"),

		// Credit metrics
		CreditRequests: factory.Counter("adloom.credit.requested"),
		CreditCleared:  factory.Counter("adloom.credit.cleared"),
		LoanRequests:   factory.Counter("adloom.loan.requested"),
		LoanRepayments: factory.Counter("adloom.loan.repaid"),

		// Vault metrics
		VaultStakes:   factory.Counter("adloom.vault.staked"),
		VaultHarvests: factory.Counter("adloom.vault.harvested"),

		// Engine metrics
		SnapshotsCommitted: factory.Counter("adloom.snapshot.committed"),
		OperationsRejected: factory.Counter("adloom.operation.rejected"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Account lifecycle hooks
// ──────────────────────────────────────────────────

// OnViewerRegistered implements plugin.OnViewerRegistered.
func (m *MetricsExtension) OnViewerRegistered(_ context.Context, _ string) error {
	m.ViewersRegistered.Inc()
	return nil
}

// OnCreatorRegistered implements plugin.OnCreatorRegistered.
func (m *MetricsExtension) OnCreatorRegistered(_ context.Context, _ string) error {
	m.CreatorsRegistered.Inc()
	return nil
}

// OnAdvertiserRegistered implements plugin.OnAdvertiserRegistered.
func (m *MetricsExtension) OnAdvertiserRegistered(_ context.Context, _ string) error {
	m.AdvertisersRegistered.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Campaign lifecycle hooks
// ──────────────────────────────────────────────────

// OnCampaignFunded implements plugin.OnCampaignFunded.
func (m *MetricsExtension) OnCampaignFunded(_ context.Context, _, _ string) error {
	m.CampaignsFunded.Inc()
	return nil
}

// OnCampaignRegistered implements plugin.OnCampaignRegistered.
func (m *MetricsExtension) OnCampaignRegistered(_ context.Context, _, _ string) error {
	m.CampaignsRegistered.Inc()
	return nil
}

// OnVariantEvolved implements plugin.OnVariantEvolved.
func (m *MetricsExtension) OnVariantEvolved(_ context.Context, _, _ string) error {
	m.VariantsEvolved.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnRewardDistributed implements plugin.OnRewardDistributed.
func (m *MetricsExtension) OnRewardDistributed(_ context.Context, _ interface{}) error {
	m.RewardsDistributed.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Credit lifecycle hooks
// ──────────────────────────────────────────────────

// OnCreditRequested implements plugin.OnCreditRequested.
func (m *MetricsExtension) OnCreditRequested(_ context.Context, _, _ string) error {
	m.CreditRequests.Inc()
	return nil
}

// OnCreditCleared implements plugin.OnCreditCleared.
func (m *MetricsExtension) OnCreditCleared(_ context.Context, _, _ string) error {
	m.CreditCleared.Inc()
	return nil
}

// OnLoanRequested implements plugin.OnLoanRequested.
func (m *MetricsExtension) OnLoanRequested(_ context.Context, _, _ string) error {
	m.LoanRequests.Inc()
	return nil
}

// OnLoanRepaid implements plugin.OnLoanRepaid.
func (m *MetricsExtension) OnLoanRepaid(_ context.Context, _, _ string) error {
	m.LoanRepayments.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Vault lifecycle hooks
// ──────────────────────────────────────────────────

// OnVaultStaked implements plugin.OnVaultStaked.
func (m *MetricsExtension) OnVaultStaked(_ context.Context, _, _ string) error {
	m.VaultStakes.Inc()
	return nil
}

// OnVaultHarvested implements plugin.OnVaultHarvested.
func (m *MetricsExtension) OnVaultHarvested(_ context.Context, _, _ string) error {
	m.VaultHarvests.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Engine hooks
// ──────────────────────────────────────────────────

// OnSnapshotCommitted implements plugin.OnSnapshotCommitted.
func (m *MetricsExtension) OnSnapshotCommitted(_ context.Context, _ string, elapsed time.Duration) error {
	m.SnapshotsCommitted.Inc()
	m.SettleLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}

// OnOperationRejected implements plugin.OnOperationRejected.
func (m *MetricsExtension) OnOperationRejected(_ context.Context, _ string, _ error) error {
	m.OperationsRejected.Inc()
	return nil
}
