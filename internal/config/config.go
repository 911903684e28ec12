// Package config handles praia configuration loading and discovery.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name praia looks for when walking up from the
// current directory.
const ConfigFile = "praia.yaml"

// EnvConfig is the environment variable that overrides config discovery.
const EnvConfig = "PRAIA_CONF"

// DefaultDB is the storage directory name used when the config does not set
// one.
const DefaultDB = ".praiadb"

// Config represents the contents of praia.yaml. Dir is the directory the
// config file was found in and anchors relative paths.
type Config struct {
	Dir string `yaml:"-"`

	// DB is the storage directory, relative to Dir unless absolute.
	DB string `yaml:"db"`

	// Upstream is reserved for future sync support.
	Upstream string `yaml:"upstream,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{DB: DefaultDB}
}

// Root returns the storage root directory.
func (c Config) Root() string {
	if filepath.IsAbs(c.DB) {
		return c.DB
	}
	return filepath.Join(c.Dir, c.DB)
}

// Load reads the config file at path and applies defaults for missing
// fields.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB == "" {
		cfg.DB = DefaultDB
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, err
	}
	cfg.Dir = filepath.Dir(abs)
	return cfg, nil
}

// Find locates the config file. An explicit path wins, then $PRAIA_CONF,
// then a walk up from the current directory looking for praia.yaml.
func Find(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot get current directory: %w", err)
	}

	dir := cwd
	for {
		candidate := filepath.Join(dir, ConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found (searched from %s to /)", ConfigFile, cwd)
		}
		dir = parent
	}
}

// Write writes the provided configuration to path.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	return Write(path, Default())
}
