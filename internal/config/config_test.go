package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) {
	t.Helper()
	// Keep the real ~/.claude config files out of merge results
	t.Setenv("HOME", t.TempDir())
}

func writeProjectConfig(t *testing.T, projectDir, name, content string) {
	t.Helper()
	configDir := filepath.Join(projectDir, ".claude")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, name), []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)

	cfg := Load("")

	assert.Equal(t, DefaultSections(), cfg.GetSections())
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
	assert.Empty(t, cfg.UsageURL)
}

func TestLoad_ProjectConfig(t *testing.T) {
	isolateHome(t)
	projectDir := t.TempDir()
	writeProjectConfig(t, projectDir, "facet.json", `{"sections":["dir","duration"],"cache_ttl_seconds":60}`)

	cfg := Load(projectDir)

	assert.Equal(t, []string{"dir", "duration"}, cfg.GetSections())
	assert.Equal(t, 60*time.Second, cfg.CacheTTL())
}

func TestLoad_LocalOverridesProject(t *testing.T) {
	isolateHome(t)
	projectDir := t.TempDir()
	writeProjectConfig(t, projectDir, "facet.json", `{"icon":"A","sections":["dir"]}`)
	writeProjectConfig(t, projectDir, "facet.local.json", `{"icon":"B"}`)

	cfg := Load(projectDir)

	assert.Equal(t, "B", cfg.Icon)
	assert.Equal(t, []string{"dir"}, cfg.GetSections(), "unset local fields keep project values")
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	isolateHome(t)
	projectDir := t.TempDir()
	writeProjectConfig(t, projectDir, "facet.json", `{"cache_path":"/from/file"}`)
	t.Setenv("FACET_CACHE_PATH", "/from/env")
	t.Setenv("FACET_CACHE_TTL", "90")

	cfg := Load(projectDir)

	assert.Equal(t, "/from/env", cfg.CachePath)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL())
}

func TestLoad_MalformedConfigIgnored(t *testing.T) {
	isolateHome(t)
	projectDir := t.TempDir()
	writeProjectConfig(t, projectDir, "facet.json", `{not json`)

	cfg := Load(projectDir)

	assert.Equal(t, DefaultSections(), cfg.GetSections())
}

func TestInit_CreatesProjectConfig(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Init(dir))

	_, err := os.Stat(filepath.Join(dir, ".claude", "facet.json"))
	assert.NoError(t, err)

	assert.ErrorIs(t, Init(dir), os.ErrExist, "second init refuses to overwrite")
}
