package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save merges updates into the YAML config file at path, keeping any other
// keys already present. An empty value removes the key. The file is written
// with mode 0600 because it may hold the API key.
func Save(path string, updates map[string]string) error {
	doc := make(map[string]any)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if doc == nil {
			doc = make(map[string]any)
		}
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("reading %s: %w", path, err)
	}

	for k, v := range updates {
		if v == "" {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0o600)
}
