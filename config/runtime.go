package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iconica/core/logging"
)

// DefaultHosts is the ordered list of icon service hosts tried per request.
var DefaultHosts = []string{
	"https://api.iconify.design",
	"https://api.simplesvg.com",
	"https://api.unisvg.com",
}

// Runtime is the iconica.yml configuration for the CLI: where the vault
// and the plugin data live, and how the core behaves outside the host app.
type Runtime struct {
	// VaultDir is the root of the note vault icons are assigned within.
	VaultDir string `yaml:"vault_dir"`
	// DataDir holds data.json, icon-library.json and the icons/ subdir.
	DataDir string `yaml:"data_dir"`
	// Hosts overrides the remote icon service host list.
	Hosts []string `yaml:"hosts"`
	// DebounceMs is the change-coalescing window for watchers (default 50).
	DebounceMs int `yaml:"debounce_ms"`
	// Logging configures log output.
	Logging logging.Config `yaml:"logging"`
}

// DefaultRuntime returns the runtime configuration used when iconica.yml
// is absent.
func DefaultRuntime() Runtime {
	home, _ := os.UserHomeDir()
	return Runtime{
		VaultDir:   ".",
		DataDir:    filepath.Join(home, ".iconica"),
		Hosts:      DefaultHosts,
		DebounceMs: 50,
	}
}

// LoadRuntime reads iconica.yml from path. A missing file yields the
// defaults; a malformed file is an error since the user wrote it by hand.
func LoadRuntime(path string) (Runtime, error) {
	cfg := DefaultRuntime()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	if len(cfg.Hosts) == 0 {
		cfg.Hosts = DefaultHosts
	}
	if cfg.DebounceMs <= 0 {
		cfg.DebounceMs = 50
	}
	return cfg, nil
}
