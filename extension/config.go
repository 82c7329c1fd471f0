package extension

// Config holds the adloom extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.adloom" or "adloom" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// LedgerName is the snapshot key the engine loads and saves under
	// (default: "default").
	LedgerName string `json:"ledger_name" mapstructure:"ledger_name" yaml:"ledger_name"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LedgerName: "default",
	}
}
