// Package config loads the portfolio configuration from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	GitHubUser  string `yaml:"github_user"`
	GitHubToken string `yaml:"github_token"`
	APIURL      string `yaml:"api_url"`

	Addr            string `yaml:"addr"`
	AssetsDir       string `yaml:"assets_dir"`
	RefreshSchedule string `yaml:"refresh_schedule"`
	WatchAssets     bool   `yaml:"watch_assets"`

	Locale            string `yaml:"locale"`
	DateLayout        string `yaml:"date_layout"`
	FeaturedThreshold int    `yaml:"featured_threshold"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		APIURL:            "https://api.github.com/",
		Addr:              ":8080",
		AssetsDir:         "assets",
		WatchAssets:       true,
		Locale:            "de",
		DateLayout:        "02.01.2006",
		FeaturedThreshold: 10,
	}
}

// Load builds the configuration. path may be empty, in which case no file is read.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	stringVars := map[string]*string{
		"GITHUB_USER":       &c.GitHubUser,
		"GITHUB_TOKEN":      &c.GitHubToken,
		"GITHUB_API_URL":    &c.APIURL,
		"PORTFOLIO_ADDR":    &c.Addr,
		"PORTFOLIO_ASSETS":  &c.AssetsDir,
		"PORTFOLIO_REFRESH": &c.RefreshSchedule,
		"PORTFOLIO_LOCALE":  &c.Locale,
	}
	for name, field := range stringVars {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}

	if v := os.Getenv("PORTFOLIO_WATCH_ASSETS"); v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_WATCH_ASSETS %q: %w", v, err)
		}
		c.WatchAssets = watch
	}
	if v := os.Getenv("PORTFOLIO_FEATURED_THRESHOLD"); v != "" {
		threshold, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_FEATURED_THRESHOLD %q: %w", v, err)
		}
		c.FeaturedThreshold = threshold
	}
	return nil
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	if c.GitHubUser == "" {
		return fmt.Errorf("github user is required (set GITHUB_USER or --user)")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	if c.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", c.RefreshSchedule, err)
		}
	}
	if c.FeaturedThreshold < 0 {
		return fmt.Errorf("featured threshold must not be negative")
	}
	return nil
}

// LanguageTag returns the parsed locale, falling back to German.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.German
	}
	return tag
}
