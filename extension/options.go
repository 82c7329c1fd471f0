package extension

import (
	adloom "github.com/sarthak567/adloom"
	"github.com/sarthak567/adloom/plugin"
	"github.com/sarthak567/adloom/store"
)

// Option configures the adloom Forge extension.
type Option func(*Extension)

// WithStore sets the snapshot store for the ledger engine.
func WithStore(s store.SnapshotStore) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithLedgerOption passes an adloom.Option through to the underlying engine.
func WithLedgerOption(opt adloom.Option) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, opt)
	}
}

// WithPlugin registers a ledger plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, adloom.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithLedgerName sets the snapshot key the engine loads and saves under.
func WithLedgerName(name string) Option {
	return func(e *Extension) { e.config.LedgerName = name }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
