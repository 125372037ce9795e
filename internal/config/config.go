package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all CLI options for a sitemap-harvester run.
type Config struct {
	Domain               string        `mapstructure:"-"`
	OutputDir            string        `mapstructure:"output"`
	NotFoundFile         string        `mapstructure:"not-found-file"`
	Timeout              time.Duration `mapstructure:"timeout"`
	UserAgent            string        `mapstructure:"user-agent"`
	AcceptDirectHomepage bool          `mapstructure:"accept-direct-homepage"` // treat a 2xx homepage probe as the homepage
	ProbeDefaultSitemap  bool          `mapstructure:"probe-default-sitemap"`  // also resolve /sitemap.xml after robots.txt entries
	NoColor              bool          `mapstructure:"no-color"`
	Verbose              bool          `mapstructure:"verbose"`
}

const (
	DefaultOutputDir    = "."
	DefaultNotFoundFile = "sitemapNotFound.txt"
	DefaultTimeout      = 30 * time.Second
	DefaultUserAgent    = "sitemap-harvester/1.0"

	// EnvPrefix is prepended to every environment override,
	// e.g. SITEMAP_HARVESTER_TIMEOUT=10s.
	EnvPrefix = "SITEMAP_HARVESTER"
)

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", DefaultOutputDir)
	v.SetDefault("not-found-file", DefaultNotFoundFile)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("user-agent", DefaultUserAgent)
	v.SetDefault("accept-direct-homepage", false)
	v.SetDefault("probe-default-sitemap", false)
	v.SetDefault("no-color", false)
	v.SetDefault("verbose", false)
}

// Load reads the optional config file and environment into a Config. When
// configFile is empty, sitemap-harvester.yaml is looked up in the working
// directory; a missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("sitemap-harvester")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks option values that would make every request fail.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return fmt.Errorf("user agent must not be empty")
	}
	if c.NotFoundFile == "" {
		return fmt.Errorf("not-found file must not be empty")
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	return nil
}
