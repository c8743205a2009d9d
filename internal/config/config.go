// Package config loads the command-line tool's project configuration from a
// YAML, TOML, INI or JSON file and fills in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/proj-coursebook/change-tracker/pkg/collect"
	"github.com/proj-coursebook/change-tracker/pkg/tracker"
)

// DefaultHistoryPath is used when no history path is configured.
const DefaultHistoryPath = ".changetracker/history.json"

// SearchNames are the file names Load looks for when no path is given.
var SearchNames = []string{
	".changetracker.yaml",
	".changetracker.yml",
	".changetracker.toml",
	".changetracker.ini",
	".changetracker.json",
}

// Config is the project configuration.
type Config struct {
	HistoryPath string   `yaml:"history_path" toml:"history_path" json:"history_path"`
	Enabled     bool     `yaml:"enabled" toml:"enabled" json:"enabled"`
	Algorithm   string   `yaml:"algorithm" toml:"algorithm" json:"algorithm"`
	Root        string   `yaml:"root" toml:"root" json:"root"`
	Include     []string `yaml:"include" toml:"include" json:"include"`
	Exclude     []string `yaml:"exclude" toml:"exclude" json:"exclude"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		HistoryPath: DefaultHistoryPath,
		Enabled:     true,
		Algorithm:   tracker.AlgorithmMD5,
		Root:        ".",
		Include:     []string{"**"},
	}
}

// Load reads the configuration at path, or the first SearchNames match in
// dir when path is empty. It returns the resolved path and whether a file
// was found; a missing file yields Default().
func Load(path, dir string) (Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolvePath(path, dir)
	if err != nil {
		return Config{}, "", false, err
	}

	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return Config{}, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, "", false, err
	}

	return cfg, resolved, exists, nil
}

func resolvePath(path, dir string) (string, bool, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", false, fmt.Errorf("config file: %w", err)
		}
		return path, true, nil
	}

	for _, name := range SearchNames {
		candidate := filepath.Join(dir, name)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", false, err
		}
	}
	return "", false, nil
}

func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ini":
		return decodeINI(path, cfg)
	case ".toml":
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		return toml.NewDecoder(file).Decode(cfg)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// decodeINI reads a [tracker] and a [collect] section. List values are
// comma separated.
func decodeINI(path string, cfg *Config) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	if file.HasSection("tracker") {
		section := file.Section("tracker")
		if section.HasKey("history_path") {
			cfg.HistoryPath = section.Key("history_path").String()
		}
		if section.HasKey("enabled") {
			enabled, err := section.Key("enabled").Bool()
			if err != nil {
				return fmt.Errorf("tracker.enabled: %w", err)
			}
			cfg.Enabled = enabled
		}
		if section.HasKey("algorithm") {
			cfg.Algorithm = section.Key("algorithm").String()
		}
	}

	if file.HasSection("collect") {
		section := file.Section("collect")
		if section.HasKey("root") {
			cfg.Root = section.Key("root").String()
		}
		if section.HasKey("include") {
			cfg.Include = section.Key("include").Strings(",")
		}
		if section.HasKey("exclude") {
			cfg.Exclude = section.Key("exclude").Strings(",")
		}
	}

	return nil
}

func (c *Config) normalize() {
	c.Algorithm = strings.ToLower(strings.TrimSpace(c.Algorithm))
	if c.Algorithm == "" {
		c.Algorithm = tracker.AlgorithmMD5
	}
	if c.Root == "" {
		c.Root = "."
	}
	if len(c.Include) == 0 {
		c.Include = []string{"**"}
	}
}

// Validate checks the algorithm and glob patterns. An empty history path is
// allowed here; the tracker reports it when a history operation runs.
func (c Config) Validate() error {
	if _, err := tracker.NewHasher(c.Algorithm); err != nil {
		return err
	}
	return c.CollectOptions().Validate()
}

// ResolvedHistoryPath returns HistoryPath, joined to Root when relative.
func (c Config) ResolvedHistoryPath() string {
	if c.HistoryPath == "" || filepath.IsAbs(c.HistoryPath) {
		return c.HistoryPath
	}
	return filepath.Join(c.Root, c.HistoryPath)
}

// CollectOptions returns the file selection for Root. The history file and
// its atomic-write temp files are always skipped, as is its directory unless
// that is Root.
func (c Config) CollectOptions() collect.Options {
	opts := collect.Options{
		Include: c.Include,
		Exclude: c.Exclude,
	}
	if hp := c.ResolvedHistoryPath(); hp != "" {
		opts.Skip = []string{hp}
		if dir := filepath.Dir(hp); filepath.Clean(dir) != filepath.Clean(c.Root) {
			opts.Skip = append(opts.Skip, dir)
		}
	}
	return opts
}

// TrackerConfig returns the tracker configuration.
func (c Config) TrackerConfig() tracker.Config {
	return tracker.Config{
		HistoryPath: c.ResolvedHistoryPath(),
		Enabled:     c.Enabled,
	}
}
