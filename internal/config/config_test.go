package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, path, exists, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Formats(t *testing.T) {
	want := Config{
		HistoryPath: "build/history.json",
		Enabled:     false,
		Algorithm:   "xxh3",
		Root:        "src",
		Include:     []string{"**/*.md", "**/*.go"},
		Exclude:     []string{"vendor/**"},
	}

	cases := map[string]string{
		".changetracker.yaml": `
history_path: build/history.json
enabled: false
algorithm: xxh3
root: src
include: ["**/*.md", "**/*.go"]
exclude: ["vendor/**"]
`,
		".changetracker.toml": `
history_path = "build/history.json"
enabled = false
algorithm = "xxh3"
root = "src"
include = ["**/*.md", "**/*.go"]
exclude = ["vendor/**"]
`,
		".changetracker.ini": `
[tracker]
history_path = build/history.json
enabled = false
algorithm = XXH3

[collect]
root = src
include = **/*.md, **/*.go
exclude = vendor/**
`,
		".changetracker.json": `{
  "history_path": "build/history.json",
  "enabled": false,
  "algorithm": "xxh3",
  "root": "src",
  "include": ["**/*.md", "**/*.go"],
  "exclude": ["vendor/**"]
}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeConfig(t, dir, name, content)

			cfg, resolved, exists, err := Load("", dir)
			require.NoError(t, err)
			assert.True(t, exists)
			assert.Equal(t, path, resolved)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yaml", "exclude: [\"*.tmp\"]\n")

	cfg, _, _, err := Load(path, dir)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, DefaultHistoryPath, cfg.HistoryPath)
	assert.Equal(t, []string{"**"}, cfg.Include)
	assert.Equal(t, []string{"*.tmp"}, cfg.Exclude)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Explicit Path Missing", func(t *testing.T) {
		_, _, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
		assert.Error(t, err)
	})

	t.Run("Unknown Algorithm", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ".changetracker.yaml", "algorithm: sha1\n")
		_, _, _, err := Load("", dir)
		assert.Error(t, err)
	})

	t.Run("Bad Pattern", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ".changetracker.yaml", "include: [\"[oops\"]\n")
		_, _, _, err := Load("", dir)
		assert.Error(t, err)
	})

	t.Run("Unsupported Extension", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "config.xml", "<x/>")
		_, _, _, err := Load(path, dir)
		assert.Error(t, err)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ".changetracker.yaml", "include: [unterminated\n")
		_, _, _, err := Load("", dir)
		assert.Error(t, err)
	})
}

func TestConfig_Derived(t *testing.T) {
	cfg := Default()
	cfg.Root = "/work/site"

	assert.Equal(t, "/work/site/.changetracker/history.json", cfg.ResolvedHistoryPath())

	opts := cfg.CollectOptions()
	assert.Equal(t, []string{"/work/site/.changetracker/history.json", "/work/site/.changetracker"}, opts.Skip)

	tc := cfg.TrackerConfig()
	assert.True(t, tc.Enabled)
	assert.Equal(t, "/work/site/.changetracker/history.json", tc.HistoryPath)

	cfg.HistoryPath = "/abs/h.json"
	assert.Equal(t, "/abs/h.json", cfg.ResolvedHistoryPath())

	cfg.HistoryPath = "h.json"
	assert.Equal(t, []string{"/work/site/h.json"}, cfg.CollectOptions().Skip)
	assert.True(t, cfg.CollectOptions().Skipped("/work/site/changetracker-tmp-1"))
	assert.False(t, cfg.CollectOptions().Skipped("/work/site/a.md"))
}
