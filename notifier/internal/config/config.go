package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	NATS     NATSConfig     `mapstructure:"nats"`
	Webhooks WebhooksConfig `mapstructure:"webhooks"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// WebhooksConfig holds the Discord webhook targets. Routes map exact
// NATS subjects to URLs; Default catches everything else. An empty
// Default drops unrouted events.
type WebhooksConfig struct {
	Default string            `mapstructure:"default"`
	Routes  map[string]string `mapstructure:"routes"`
	Timeout time.Duration     `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("webhooks.timeout", "5s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/precinct/notifier")
	}

	v.SetEnvPrefix("NOTIFIER")
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
	return &cfg, nil
}
