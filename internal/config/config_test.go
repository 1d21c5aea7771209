package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"GITHUB_USER", "GITHUB_TOKEN", "GITHUB_API_URL", "PORTFOLIO_ADDR", "PORTFOLIO_ASSETS",
		"PORTFOLIO_REFRESH", "PORTFOLIO_LOCALE", "PORTFOLIO_WATCH_ASSETS", "PORTFOLIO_FEATURED_THRESHOLD",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		envVars  map[string]string
		wantErr  bool
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults only",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "file overrides defaults",
			file: "github_user: octo\naddr: \":9090\"\nfeatured_threshold: 25\nrefresh_schedule: \"*/30 * * * *\"\n",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "octo", cfg.GitHubUser)
				assert.Equal(t, ":9090", cfg.Addr)
				assert.Equal(t, 25, cfg.FeaturedThreshold)
				assert.Equal(t, "*/30 * * * *", cfg.RefreshSchedule)
				assert.Equal(t, "assets", cfg.AssetsDir)
			},
		},
		{
			name:    "environment overrides file",
			file:    "github_user: octo\nlocale: en\n",
			envVars: map[string]string{"GITHUB_USER": "erik", "GITHUB_TOKEN": "token123", "PORTFOLIO_WATCH_ASSETS": "false"},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "erik", cfg.GitHubUser)
				assert.Equal(t, "token123", cfg.GitHubToken)
				assert.Equal(t, "en", cfg.Locale)
				assert.False(t, cfg.WatchAssets)
			},
		},
		{
			name:    "invalid yaml",
			file:    "github_user: [unterminated",
			wantErr: true,
		},
		{
			name:    "invalid threshold env",
			envVars: map[string]string{"PORTFOLIO_FEATURED_THRESHOLD": "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = filepath.Join(t.TempDir(), "portfolio.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.file), 0o600))
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing user", mutate: func(c *Config) { c.GitHubUser = "" }, wantErr: "github user is required"},
		{name: "bad locale", mutate: func(c *Config) { c.Locale = "not a locale!" }, wantErr: "invalid locale"},
		{name: "bad schedule", mutate: func(c *Config) { c.RefreshSchedule = "every now and then" }, wantErr: "invalid refresh schedule"},
		{name: "negative threshold", mutate: func(c *Config) { c.FeaturedThreshold = -1 }, wantErr: "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.GitHubUser = "octo"
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLanguageTag(t *testing.T) {
	cfg := Default()
	assert.Equal(t, language.German.String(), cfg.LanguageTag().String())
	cfg.Locale = "en"
	assert.Equal(t, language.English.String(), cfg.LanguageTag().String())
}
