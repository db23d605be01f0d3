package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all vzdash configuration.
type Config struct {
	Gateway    GatewayConfig    `toml:"gateway"`
	Checkout   CheckoutConfig   `toml:"checkout"`
	Watch      WatchConfig      `toml:"watch"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GatewayConfig holds gateway endpoint settings.
type GatewayConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

// CheckoutConfig controls the post-checkout balance reconciliation timing.
// Two deferred re-reads converge the cached balance with the server ledger
// after a top-up; the delays are heuristics, not completion signals.
type CheckoutConfig struct {
	FirstRefreshSec  int `toml:"first_refresh_sec"`
	SecondRefreshSec int `toml:"second_refresh_sec"`
}

// WatchConfig holds polling settings for watch mode.
type WatchConfig struct {
	IntervalSec int `toml:"interval_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration. The checkout delays match
// the hosted dashboard's 5s/15s convergence schedule.
func DefaultConfig() Config {
	return Config{
		Checkout: CheckoutConfig{
			FirstRefreshSec:  5,
			SecondRefreshSec: 15,
		},
		Watch: WatchConfig{
			IntervalSec: 30,
		},
		Appearance: AppearanceConfig{
			Theme: "vuzo-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vzdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vzdash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// SessionPath returns the path of the stored session token file.
func SessionPath() string {
	return filepath.Join(ConfigDir(), "session.toml")
}

// CachePath returns the path of the local snapshot cache database.
func CachePath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "vzdash", "snapshots.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "vzdash", "snapshots.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// BaseURL returns the gateway base URL from env var or config, in that order.
func BaseURL(cfg Config) string {
	if u := os.Getenv("VUZO_BASE_URL"); u != "" {
		return u
	}
	return cfg.Gateway.BaseURL
}

// RefreshDelays converts the checkout config into the two reconciliation
// delays, falling back to defaults for non-positive values.
func RefreshDelays(cfg Config) (time.Duration, time.Duration) {
	def := DefaultConfig().Checkout
	first, second := cfg.Checkout.FirstRefreshSec, cfg.Checkout.SecondRefreshSec
	if first <= 0 {
		first = def.FirstRefreshSec
	}
	if second <= 0 {
		second = def.SecondRefreshSec
	}
	return time.Duration(first) * time.Second, time.Duration(second) * time.Second
}
