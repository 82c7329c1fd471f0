package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                 []OnInit
	onShutdown             []OnShutdown
	onViewerRegistered     []OnViewerRegistered
	onCreatorRegistered    []OnCreatorRegistered
	onAdvertiserRegistered []OnAdvertiserRegistered
	onCampaignFunded       []OnCampaignFunded
	onCampaignRegistered   []OnCampaignRegistered
	onVariantEvolved       []OnVariantEvolved
	onAIAgentConfigured    []OnAIAgentConfigured
	onInstructionSubmitted []OnInstructionSubmitted
	onRewardDistributed    []OnRewardDistributed
	onCreditRequested      []OnCreditRequested
	onCreditCleared        []OnCreditCleared
	onLoanRequested        []OnLoanRequested
	onLoanRepaid           []OnLoanRepaid
	onVaultStaked          []OnVaultStaked
	onVaultHarvested       []OnVaultHarvested
	onSnapshotCommitted    []OnSnapshotCommitted
	onOperationRejected    []OnOperationRejected
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnViewerRegistered); ok {
		r.onViewerRegistered = append(r.onViewerRegistered, v)
	}
	if v, ok := p.(OnCreatorRegistered); ok {
		r.onCreatorRegistered = append(r.onCreatorRegistered, v)
	}
	if v, ok := p.(OnAdvertiserRegistered); ok {
		r.onAdvertiserRegistered = append(r.onAdvertiserRegistered, v)
	}
	if v, ok := p.(OnCampaignFunded); ok {
		r.onCampaignFunded = append(r.onCampaignFunded, v)
	}
	if v, ok := p.(OnCampaignRegistered); ok {
		r.onCampaignRegistered = append(r.onCampaignRegistered, v)
	}
	if v, ok := p.(OnVariantEvolved); ok {
		r.onVariantEvolved = append(r.onVariantEvolved, v)
	}
	if v, ok := p.(OnAIAgentConfigured); ok {
		r.onAIAgentConfigured = append(r.onAIAgentConfigured, v)
	}
	if v, ok := p.(OnInstructionSubmitted); ok {
		r.onInstructionSubmitted = append(r.onInstructionSubmitted, v)
	}
	if v, ok := p.(OnRewardDistributed); ok {
		r.onRewardDistributed = append(r.onRewardDistributed, v)
	}
	if v, ok := p.(OnCreditRequested); ok {
		r.onCreditRequested = append(r.onCreditRequested, v)
	}
	if v, ok := p.(OnCreditCleared); ok {
		r.onCreditCleared = append(r.onCreditCleared, v)
	}
	if v, ok := p.(OnLoanRequested); ok {
		r.onLoanRequested = append(r.onLoanRequested, v)
	}
	if v, ok := p.(OnLoanRepaid); ok {
		r.onLoanRepaid = append(r.onLoanRepaid, v)
	}
	if v, ok := p.(OnVaultStaked); ok {
		r.onVaultStaked = append(r.onVaultStaked, v)
	}
	if v, ok := p.(OnVaultHarvested); ok {
		r.onVaultHarvested = append(r.onVaultHarvested, v)
	}
	if v, ok := p.(OnSnapshotCommitted); ok {
		r.onSnapshotCommitted = append(r.onSnapshotCommitted, v)
	}
	if v, ok := p.(OnOperationRejected); ok {
		r.onOperationRejected = append(r.onOperationRejected, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnViewerRegistered)(nil)).Elem(), "OnViewerRegistered")
	checkInterface(reflect.TypeOf((*OnCreatorRegistered)(nil)).Elem(), "OnCreatorRegistered")
	checkInterface(reflect.TypeOf((*OnAdvertiserRegistered)(nil)).Elem(), "OnAdvertiserRegistered")
	checkInterface(reflect.TypeOf((*OnRewardDistributed)(nil)).Elem(), "OnRewardDistributed")
	checkInterface(reflect.TypeOf((*OnSnapshotCommitted)(nil)).Elem(), "OnSnapshotCommitted")
	checkInterface(reflect.TypeOf((*OnOperationRejected)(nil)).Elem(), "OnOperationRejected")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitViewerRegistered emits a viewer registered event.
func (r *Registry) EmitViewerRegistered(ctx context.Context, viewerID string) {
	r.mu.RLock()
	plugins := r.onViewerRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnViewerRegistered(ctx, viewerID)
		}); err != nil {
			r.logger.Warn("plugin OnViewerRegistered failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitCreatorRegistered emits a creator registered event.
func (r *Registry) EmitCreatorRegistered(ctx context.Context, creatorID string) {
	r.mu.RLock()
	plugins := r.onCreatorRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCreatorRegistered(ctx, creatorID)
		}); err != nil {
			r.logger.Warn("plugin OnCreatorRegistered failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitAdvertiserRegistered emits an advertiser registered event.
func (r *Registry) EmitAdvertiserRegistered(ctx context.Context, advertiserID string) {
	r.mu.RLock()
	plugins := r.onAdvertiserRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAdvertiserRegistered(ctx, advertiserID)
		}); err != nil {
			r.logger.Warn("plugin OnAdvertiserRegistered failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitCampaignFunded emits a campaign funded event.
func (r *Registry) EmitCampaignFunded(ctx context.Context, advertiserID, amount string) {
	r.mu.RLock()
	plugins := r.onCampaignFunded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCampaignFunded(ctx, advertiserID, amount)
		}); err != nil {
			r.logger.Warn("plugin OnCampaignFunded failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitCampaignRegistered emits a campaign registered event.
func (r *Registry) EmitCampaignRegistered(ctx context.Context, advertiserID, campaignID string) {
	r.mu.RLock()
	plugins := r.onCampaignRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCampaignRegistered(ctx, advertiserID, campaignID)
		}); err != nil {
			r.logger.Warn("plugin OnCampaignRegistered failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitVariantEvolved emits a variant evolved event.
func (r *Registry) EmitVariantEvolved(ctx context.Context, campaignID, variantID string) {
	r.mu.RLock()
	plugins := r.onVariantEvolved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnVariantEvolved(ctx, campaignID, variantID)
		}); err != nil {
			r.logger.Warn("plugin OnVariantEvolved failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitAIAgentConfigured emits an AI agent configured event.
func (r *Registry) EmitAIAgentConfigured(ctx context.Context, advertiserID string) {
	r.mu.RLock()
	plugins := r.onAIAgentConfigured
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAIAgentConfigured(ctx, advertiserID)
		}); err != nil {
			r.logger.Warn("plugin OnAIAgentConfigured failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitInstructionSubmitted emits an instruction submitted event.
func (r *Registry) EmitInstructionSubmitted(ctx context.Context, advertiserID string) {
	r.mu.RLock()
	plugins := r.onInstructionSubmitted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInstructionSubmitted(ctx, advertiserID)
		}); err != nil {
			r.logger.Warn("plugin OnInstructionSubmitted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitRewardDistributed emits a reward distributed event.
func (r *Registry) EmitRewardDistributed(ctx context.Context, evt interface{}) {
	r.mu.RLock()
	plugins := r.onRewardDistributed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnRewardDistributed(ctx, evt)
		}); err != nil {
			r.logger.Warn("plugin OnRewardDistributed failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitCreditRequested emits a credit requested event.
func (r *Registry) EmitCreditRequested(ctx context.Context, viewerID, amount string) {
	r.mu.RLock()
	plugins := r.onCreditRequested
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCreditRequested(ctx, viewerID, amount)
		}); err != nil {
			r.logger.Warn("plugin OnCreditRequested failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitCreditCleared emits a credit cleared event.
func (r *Registry) EmitCreditCleared(ctx context.Context, viewerID, amount string) {
	r.mu.RLock()
	plugins := r.onCreditCleared
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCreditCleared(ctx, viewerID, amount)
		}); err != nil {
			r.logger.Warn("plugin OnCreditCleared failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitLoanRequested emits a loan requested event.
func (r *Registry) EmitLoanRequested(ctx context.Context, viewerID, amount string) {
	r.mu.RLock()
	plugins := r.onLoanRequested
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLoanRequested(ctx, viewerID, amount)
		}); err != nil {
			r.logger.Warn("plugin OnLoanRequested failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitLoanRepaid emits a loan repaid event.
func (r *Registry) EmitLoanRepaid(ctx context.Context, viewerID, amount string) {
	r.mu.RLock()
	plugins := r.onLoanRepaid
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLoanRepaid(ctx, viewerID, amount)
		}); err != nil {
			r.logger.Warn("plugin OnLoanRepaid failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitVaultStaked emits a vault staked event.
func (r *Registry) EmitVaultStaked(ctx context.Context, creatorID, amount string) {
	r.mu.RLock()
	plugins := r.onVaultStaked
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnVaultStaked(ctx, creatorID, amount)
		}); err != nil {
			r.logger.Warn("plugin OnVaultStaked failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitVaultHarvested emits a vault harvested event.
func (r *Registry) EmitVaultHarvested(ctx context.Context, creatorID, yield string) {
	r.mu.RLock()
	plugins := r.onVaultHarvested
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnVaultHarvested(ctx, creatorID, yield)
		}); err != nil {
			r.logger.Warn("plugin OnVaultHarvested failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitSnapshotCommitted emits a snapshot committed event.
func (r *Registry) EmitSnapshotCommitted(ctx context.Context, opKind string, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onSnapshotCommitted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSnapshotCommitted(ctx, opKind, elapsed)
		}); err != nil {
			r.logger.Warn("plugin OnSnapshotCommitted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitOperationRejected emits an operation rejected event.
func (r *Registry) EmitOperationRejected(ctx context.Context, opKind string, reason error) {
	r.mu.RLock()
	plugins := r.onOperationRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnOperationRejected(ctx, opKind, reason)
		}); err != nil {
			r.logger.Warn("plugin OnOperationRejected failed", "plugin", p.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins must never block the settlement pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
