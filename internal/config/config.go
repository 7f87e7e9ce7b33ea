package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/truefrontier/openrouter-launch/internal/catalog"
)

// Data collection settings passed on to the launched tools.
const (
	DataCollectionAllow = "allow"
	DataCollectionDeny  = "deny"
)

// Credential store backends.
const (
	StoreKeyring = "keyring"
	StoreFile    = "file"
)

// SortOrders are the accepted provider_sort values.
var SortOrders = []string{"price", "throughput", "latency"}

// Config holds launcher settings and saved preferences.
type Config struct {
	APIKey          string `mapstructure:"api_key"`
	DefaultModel    string `mapstructure:"default_model"`
	DataCollection  string `mapstructure:"data_collection"`
	ProviderSort    string `mapstructure:"provider_sort"`
	CacheDir        string `mapstructure:"cache_dir"`
	CacheTTL        string `mapstructure:"cache_ttl"`
	APIBaseURL      string `mapstructure:"api_base_url"`
	ModelsURL       string `mapstructure:"models_url"`
	CredentialStore string `mapstructure:"credential_store"`
	LogLevel        string `mapstructure:"log_level"`

	// CodingPrefixes decide which model identifiers are listed first.
	CodingPrefixes []string `mapstructure:"coding_prefixes"`

	// File is the config file that was read, or the default location when
	// none exists yet.
	File string `mapstructure:"-"`
}

// Load reads configuration from file, environment, and defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("api_key", "")
	v.SetDefault("default_model", "")
	v.SetDefault("data_collection", DataCollectionDeny)
	v.SetDefault("provider_sort", "")
	v.SetDefault("cache_dir", DefaultCacheDir())
	v.SetDefault("cache_ttl", "1h")
	v.SetDefault("api_base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("models_url", "https://openrouter.ai/api/v1/models")
	v.SetDefault("credential_store", StoreKeyring)
	v.SetDefault("log_level", "warn")
	v.SetDefault("coding_prefixes", catalog.CodingPrefixes)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
	}

	// Environment variables
	v.SetEnvPrefix("OPENROUTER_LAUNCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("api_key", "OPENROUTER_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		// An explicit --config path may not exist yet; it is created on save.
		if !notFound && !(cfgFile != "" && errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.File = cfgFile
	if cfg.File == "" {
		cfg.File = v.ConfigFileUsed()
	}
	if cfg.File == "" {
		cfg.File = DefaultConfigFile()
	}

	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if err := ValidateSort(c.ProviderSort); err != nil {
		return err
	}
	switch c.DataCollection {
	case DataCollectionAllow, DataCollectionDeny:
	default:
		return fmt.Errorf("invalid data_collection: %s (must be allow|deny)", c.DataCollection)
	}
	switch c.CredentialStore {
	case StoreKeyring, StoreFile:
	default:
		return fmt.Errorf("invalid credential_store: %s (must be keyring|file)", c.CredentialStore)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// ValidateSort checks a provider sort order. Empty means unset.
func ValidateSort(order string) error {
	if order == "" || slices.Contains(SortOrders, order) {
		return nil
	}
	return fmt.Errorf("invalid sort order: %s (must be price|throughput|latency)", order)
}

// TTL parses CacheTTL.
func (c *Config) TTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache_ttl %q: %w", c.CacheTTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("invalid cache_ttl %q: must be positive", c.CacheTTL)
	}
	return ttl, nil
}

// DefaultConfigDir is where the config file lives unless --config is given.
func DefaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "openrouter-launch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "openrouter-launch")
	}
	return filepath.Join(home, ".config", "openrouter-launch")
}

// DefaultConfigFile returns the default config file path.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultCacheDir returns the per-user model cache directory.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "openrouter-cache")
	}
	return filepath.Join(home, ".cache", "openrouter")
}
