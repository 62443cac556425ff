// Package config resolves client settings from defaults, an optional YAML
// file, and ASSETDESK_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/assetdesk/assetdesk/locator"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const envPrefix = "assetdesk"

const (
	defaultDevURL       = "http://localhost:8000/api/v1"
	defaultProbeTimeout = "3s"
	defaultConfigDir    = ".assetdesk"
	defaultSessionFile  = "session.db"
)

type BackendConfig struct {
	DevURL       string `mapstructure:"dev_url"`
	ProdURL      string `mapstructure:"prod_url"`
	ProbeTimeout string `mapstructure:"probe_timeout"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load reads configuration. With an empty cfgFile it looks for
// ~/.assetdesk/config.yaml or ./config.yaml; a missing file is fine, the
// defaults and environment cover everything.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("backend.dev_url", defaultDevURL)
	v.SetDefault("backend.prod_url", "")
	v.SetDefault("backend.probe_timeout", defaultProbeTimeout)
	v.SetDefault("session.path", "")
	v.SetDefault("logging.level", LogLevelInfo)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, defaultConfigDir))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend,
			validation.Required,
			validation.By(func(value interface{}) error {
				bc, ok := value.(BackendConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a BackendConfig")
				}
				return validation.ValidateStruct(&bc,
					validation.Field(&bc.DevURL, validation.By(validateBackendURL)),
					validation.Field(&bc.ProdURL, validation.By(validateBackendURL)),
					validation.Field(&bc.ProbeTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
	)
}

// Candidates returns the probe order: dev first, then prod. Unset URLs are
// left out; an empty result means no backend is configured at all.
func (c *Config) Candidates() []locator.Candidate {
	var candidates []locator.Candidate
	if c.Backend.DevURL != "" {
		candidates = append(candidates, locator.Candidate{Name: "dev", URL: c.Backend.DevURL})
	}
	if c.Backend.ProdURL != "" {
		candidates = append(candidates, locator.Candidate{Name: "prod", URL: c.Backend.ProdURL})
	}
	return candidates
}

func (c *Config) ProbeTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Backend.ProbeTimeout)
	if err != nil {
		return 3 * time.Second
	}
	return d
}

// SessionPath resolves where the token store lives, defaulting to
// ~/.assetdesk/session.db.
func (c *Config) SessionPath() (string, error) {
	if c.Session.Path != "" {
		return c.Session.Path, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home dir: %w", err)
	}
	return filepath.Join(home, defaultConfigDir, defaultSessionFile), nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// validateBackendURL accepts an unset URL; a configured one has to be a
// plain http(s) URL with a host.
func validateBackendURL(value interface{}) error {
	backendURL, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if backendURL == "" {
		return nil
	}

	parsedURL, err := url.Parse(backendURL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if _, err := time.ParseDuration(durationStr); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	return nil
}
