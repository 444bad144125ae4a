package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"BACKEND_URL", "REQUEST_TIMEOUT", "CONTENT_CACHE_TTL", "LOG_FILE", "DEBUG", "TAB_WIDTH"} {
		t.Setenv("CODENAV_"+key, "")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend_url: http://file.example:8000\nlog_file: \"\"\n"), 0o644))
	flags = rootFlags{}
	t.Cleanup(func() { flags = rootFlags{} })
	return path
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	cfgPath := isolateConfig(t)
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", cfgPath,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--backend", "http://flag.example:9000",
		"--log-file", "/tmp/codenav-test.log",
		"--debug",
	}))

	cfg, err := loadConfig(cmd, flags)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example:9000", cfg.BackendURL)
	assert.Equal(t, "/tmp/codenav-test.log", cfg.LogFile)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigKeepsFileValuesWithoutFlags(t *testing.T) {
	cfgPath := isolateConfig(t)
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", cfgPath,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
	}))

	cfg, err := loadConfig(cmd, flags)
	require.NoError(t, err)
	assert.Equal(t, "http://file.example:8000", cfg.BackendURL)
	assert.Empty(t, cfg.LogFile)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigRejectsInvalidBackend(t *testing.T) {
	cfgPath := isolateConfig(t)
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", cfgPath,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--backend", "not a url",
	}))

	_, err := loadConfig(cmd, flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend_url")
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	isolateConfig(t)
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))

	_, err := loadConfig(cmd, flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config")
}

func TestVersionCommand(t *testing.T) {
	prevVersion, prevCommit, prevDate := buildVersion, buildCommit, buildDate
	t.Cleanup(func() { SetVersionInfo(prevVersion, prevCommit, prevDate) })

	tests := []struct {
		name           string
		commit         string
		expectContains []string
	}{
		{"release", "abc123", []string{"codenav 1.2.3", "commit: abc123", "built:  2026-01-02"}},
		{"dev", "none", []string{"codenav 1.2.3\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersionInfo("1.2.3", tt.commit, "2026-01-02")
			cmd := newRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"version"})
			require.NoError(t, cmd.Execute())
			for _, want := range tt.expectContains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestRootRejectsPositionalArgs(t *testing.T) {
	isolateConfig(t)
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.Execute())
}
