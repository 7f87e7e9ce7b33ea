package credential

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"

	"github.com/truefrontier/openrouter-launch/internal/config"
)

const (
	// ServiceName is the keychain service identifier.
	ServiceName = "openrouter-launch"

	// KeyAccount is the keychain account holding the API key.
	KeyAccount = "api-key"
)

// ErrNotFound is returned when no stored key exists.
var ErrNotFound = errors.New("api key not found")

// Store persists the OpenRouter API key in the OS keychain, or in the
// config file when the keychain is unavailable or disabled.
type Store struct {
	service    string
	configFile string
	useKeyring bool
}

// New creates a Store from the loaded config.
func New(cfg *config.Config) *Store {
	return &Store{
		service:    ServiceName,
		configFile: cfg.File,
		useKeyring: cfg.CredentialStore != config.StoreFile,
	}
}

// Get returns the key saved in the keychain. Keys saved in the config file
// are already part of the loaded config.
func (s *Store) Get() (string, error) {
	if !s.useKeyring {
		return "", ErrNotFound
	}
	key, err := keyring.Get(s.service, KeyAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get key: %w", err)
	}
	return key, nil
}

// Save stores key and reports where it went.
func (s *Store) Save(key string) (string, error) {
	if s.useKeyring {
		err := keyring.Set(s.service, KeyAccount, key)
		if err == nil {
			return "system keychain", nil
		}
		slog.Warn("keychain unavailable, saving key to config file", "error", err)
	}
	if err := config.Save(s.configFile, map[string]string{"api_key": key}); err != nil {
		return "", fmt.Errorf("store key: %w", err)
	}
	return s.configFile, nil
}
