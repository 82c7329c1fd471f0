// Package extension provides the Forge extension adapter for adloom.
//
// It implements the forge.Extension interface to integrate the
// attention ledger into a Forge application with DI registration and
// lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.adloom" or "adloom" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	adloom "github.com/sarthak567/adloom"
	"github.com/sarthak567/adloom/store"
	"github.com/sarthak567/adloom/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "adloom"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Deterministic attention-economy settlement engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the attention ledger as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *adloom.Ledger
	store      store.SnapshotStore
	ledgerOpts []adloom.Option
}

// New creates a new adloom Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Ledger instance.
// This is nil until Register is called.
func (e *Extension) Engine() *adloom.Ledger { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the ledger engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build ledger options from resolved config.
	opts := e.buildLedgerOpts()

	eng := adloom.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*adloom.Ledger, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("adloom: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("adloom: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildLedgerOpts constructs adloom.Option values from the resolved config.
func (e *Extension) buildLedgerOpts() []adloom.Option {
	opts := make([]adloom.Option, 0, len(e.ledgerOpts)+1)

	if e.config.LedgerName != "" {
		opts = append(opts, adloom.WithLedgerName(e.config.LedgerName))
	}

	// Append any pass-through ledger options.
	opts = append(opts, e.ledgerOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("adloom: configuration is required but not found in config files; " +
				"ensure 'extensions.adloom' or 'adloom' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("adloom: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("ledger_name", e.config.LedgerName),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.adloom" first (namespaced pattern).
	if cm.IsSet("extensions.adloom") {
		if err := cm.Bind("extensions.adloom", &cfg); err == nil {
			e.Logger().Debug("adloom: loaded config from file",
				forge.F("key", "extensions.adloom"),
			)
			return cfg, true
		}
		e.Logger().Warn("adloom: failed to bind extensions.adloom config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "adloom" key.
	if cm.IsSet("adloom") {
		if err := cm.Bind("adloom", &cfg); err == nil {
			e.Logger().Debug("adloom: loaded config from file",
				forge.F("key", "adloom"),
			)
			return cfg, true
		}
		e.Logger().Warn("adloom: failed to bind adloom config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.LedgerName == "" {
		cfg.LedgerName = defaults.LedgerName
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.LedgerName == "" && programmaticConfig.LedgerName != "" {
		yamlConfig.LedgerName = programmaticConfig.LedgerName
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
