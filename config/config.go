package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel       = "info"
	DefaultRequestTimeout = 15 * time.Second
)

// ntfy rejects or reroutes anything outside this set.
var topicPattern = regexp.MustCompile(`^[-_A-Za-z0-9]{1,64}$`)

type Config struct {
	IPOSourceURL   string        `mapstructure:"ipo_source_url"`
	NtfyTopic      string        `mapstructure:"ntfy_topic"`
	LogLevel       string        `mapstructure:"log_level"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ConfigurationError lists every required setting that is missing or unusable.
type ConfigurationError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return "configuration error: " + strings.Join(parts, "; ")
}

// Load reads config.yaml and .env from dir when present, then the process
// environment, and validates the result.
func Load(dir string) (*Config, error) {
	envFile := path.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		slog.Debug("loaded env file", slog.String("path", envFile))
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	for _, key := range []string{"ipo_source_url", "ntfy_topic", "log_level", "request_timeout"} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("can't read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.IPOSourceURL = strings.TrimSpace(cfg.IPOSourceURL)
	cfg.NtfyTopic = strings.TrimSpace(cfg.NtfyTopic)
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	cfgErr := &ConfigurationError{}
	if c.IPOSourceURL == "" {
		cfgErr.Missing = append(cfgErr.Missing, "IPO_SOURCE_URL")
	} else if u, err := url.Parse(c.IPOSourceURL); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		cfgErr.Invalid = append(cfgErr.Invalid, "IPO_SOURCE_URL")
	}
	if c.NtfyTopic == "" {
		cfgErr.Missing = append(cfgErr.Missing, "NTFY_TOPIC")
	} else if !topicPattern.MatchString(c.NtfyTopic) {
		cfgErr.Invalid = append(cfgErr.Invalid, "NTFY_TOPIC")
	}

	if len(cfgErr.Missing) > 0 || len(cfgErr.Invalid) > 0 {
		return cfgErr
	}
	return nil
}
