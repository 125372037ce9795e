package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultNotFoundFile, cfg.NotFoundFile)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.False(t, cfg.AcceptDirectHomepage)
	assert.False(t, cfg.ProbeDefaultSitemap)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "harvest.yaml")
	content := "timeout: 5s\nuser-agent: test-agent\naccept-direct-homepage: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("SITEMAP_HARVESTER_NOT_FOUND_FILE", "missing.txt")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.True(t, cfg.AcceptDirectHomepage)
	assert.Equal(t, "missing.txt", cfg.NotFoundFile)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Timeout: time.Second, UserAgent: "ua", NotFoundFile: "nf.txt"}
	require.NoError(t, valid.Validate())
	assert.Equal(t, DefaultOutputDir, valid.OutputDir)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero timeout", Config{UserAgent: "ua", NotFoundFile: "nf.txt"}},
		{"blank user agent", Config{Timeout: time.Second, UserAgent: "  ", NotFoundFile: "nf.txt"}},
		{"no not-found file", Config{Timeout: time.Second, UserAgent: "ua"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
