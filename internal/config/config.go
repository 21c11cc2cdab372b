// Package config loads settings for the handoff example programs from
// defaults, an optional JSON or YAML file, and HANDOFF_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vnykmshr/handoff/pkg/common/validation"
	"github.com/vnykmshr/handoff/pkg/scheduling/feed"
)

// EnvPrefix prefixes every environment variable override, e.g.
// HANDOFF_PRODUCERS=8 or HANDOFF_FEEDSCHEDULE="@every 2s".
const EnvPrefix = "HANDOFF"

// Config holds the settings of an example pipeline.
type Config struct {
	LogLevel            string `mapstructure:"logLevel"`
	MetricsAddr         string `mapstructure:"metricsAddr"`
	Producers           int    `mapstructure:"producers"`
	MessagesPerProducer int    `mapstructure:"messagesPerProducer"`
	FeedSchedule        string `mapstructure:"feedSchedule"`
	FeedTicks           int    `mapstructure:"feedTicks"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("metricsAddr", ":2112")
	v.SetDefault("producers", 4)
	v.SetDefault("messagesPerProducer", 1000)
	v.SetDefault("feedSchedule", "@every 1s")
	v.SetDefault("feedTicks", 3)
}

// Load reads the configuration. path names a JSON or YAML file and may be
// empty, in which case only defaults and the environment apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := validation.ValidatePositive("config", "producers", c.Producers); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("config", "messagesPerProducer", c.MessagesPerProducer); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("config", "feedTicks", c.FeedTicks); err != nil {
		return err
	}
	if c.FeedTicks > 0 {
		return feed.Validate(c.FeedSchedule)
	}
	return nil
}
