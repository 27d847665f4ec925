package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/raaihank/owoify/pkg/owoify"
	"github.com/spf13/viper"
)

// envKeys lists the settings that can be overridden from the environment.
// Unmarshal only sees environment values for keys viper knows about.
var envKeys = []string{
	"server.port",
	"server.read_timeout",
	"server.write_timeout",
	"server.idle_timeout",
	"owoify.default_level",
	"owoify.workers",
	"owoify.max_input_bytes",
	"rate_limit.enabled",
	"rate_limit.requests_per_second",
	"rate_limit.burst",
	"rate_limit.idle_ttl",
	"websocket.enabled",
	"websocket.path",
	"websocket.max_message_size",
	"logging.level",
	"logging.format",
	"logging.file.enabled",
	"logging.file.path",
}

var (
	activeMu sync.Mutex
	active   *viper.Viper
)

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()
	config, err := load(v, configPath)
	if err != nil {
		return nil, err
	}

	activeMu.Lock()
	active = v
	activeMu.Unlock()

	return config, nil
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	config := GetDefaults()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/owoify/")
	v.AddConfigPath("$HOME/.owoify/")

	// OWOIFY_OWOIFY_DEFAULT_LEVEL, OWOIFY_SERVER_PORT, ...
	v.SetEnvPrefix("OWOIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error - we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if _, err := owoify.ParseLevel(config.Owoify.DefaultLevel); err != nil {
		return fmt.Errorf("invalid default level: %w", err)
	}

	if config.Owoify.Workers < 1 {
		return fmt.Errorf("invalid worker count: %d (must be at least 1)", config.Owoify.Workers)
	}

	if config.Owoify.MaxInputBytes <= 0 {
		return fmt.Errorf("invalid max input bytes: %d", config.Owoify.MaxInputBytes)
	}

	if config.RateLimit.Enabled && (config.RateLimit.RequestsPerSecond <= 0 || config.RateLimit.Burst < 1) {
		return fmt.Errorf("invalid rate limit: %v req/s, burst %d", config.RateLimit.RequestsPerSecond, config.RateLimit.Burst)
	}

	if config.Logging.Level != "debug" && config.Logging.Level != "info" && config.Logging.Level != "warn" && config.Logging.Level != "error" {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	return nil
}

// DefaultLevel returns the parsed default owoify level
func (c *Config) DefaultLevel() owoify.Level {
	level, err := owoify.ParseLevel(c.Owoify.DefaultLevel)
	if err != nil {
		return owoify.Basic
	}
	return level
}

// Watch starts watching the configuration file of the last successful Load
// for changes. Invalid configurations are passed to onError and otherwise ignored.
func Watch(callback func(*Config), onError func(error)) error {
	activeMu.Lock()
	v := active
	activeMu.Unlock()

	if v == nil {
		return fmt.Errorf("no configuration loaded")
	}
	if v.ConfigFileUsed() == "" {
		// running on defaults and environment only
		return nil
	}

	watch(v, callback, onError)
	return nil
}

func watch(v *viper.Viper, callback func(*Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		newConfig := GetDefaults()
		if err := v.Unmarshal(newConfig); err != nil {
			onError(fmt.Errorf("failed to unmarshal %s: %w", e.Name, err))
			return
		}

		if err := validateConfig(newConfig); err != nil {
			onError(fmt.Errorf("invalid configuration in %s: %w", e.Name, err))
			return
		}

		callback(newConfig)
	})
	v.WatchConfig()
}
