// Package config handles dcpps configuration using Viper.
//
// Configuration sources (in priority order):
//  1. Environment variables (DCPPS_*)
//  2. Config file (<user config dir>/dcpps/config.yaml)
//  3. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/musher-dev/dcpps/internal/paths"
)

const (
	// DefaultInterval is the default watch interval in seconds.
	DefaultInterval = 1.0

	// KeyInterval is the watch interval in seconds.
	KeyInterval = "watch.interval"
	// KeyComposeFile is the compose file used instead of the one found in
	// the working directory.
	KeyComposeFile = "compose.file"
)

// Keys lists the settings understood by dcpps with a short description.
var Keys = map[string]string{
	KeyInterval:    "Watch refresh interval in seconds",
	KeyComposeFile: "Compose file to read instead of ./docker-compose.yml",
}

// Config holds the dcpps configuration.
type Config struct {
	v *viper.Viper
}

// Load reads configuration from all sources.
func Load() *Config {
	v := viper.New()

	v.SetDefault(KeyInterval, DefaultInterval)
	v.SetDefault(KeyComposeFile, "")

	if configDir, err := paths.ConfigRoot(); err == nil {
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DCPPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine; anything else is worth a warning.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file: %v\n", err)
		}
	}

	return &Config{v: v}
}

// Get returns a configuration value.
func (c *Config) Get(key string) interface{} {
	return c.v.Get(key)
}

// GetString returns a configuration value as string.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetFloat64 returns a configuration value as float64.
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// Set sets a configuration value and persists it.
func (c *Config) Set(key string, value interface{}) error {
	c.v.Set(key, value)

	configFile, err := paths.ConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
		return err
	}

	return c.v.WriteConfigAs(configFile)
}

// All returns all configuration as a map.
func (c *Config) All() map[string]interface{} {
	return c.v.AllSettings()
}

// Interval returns the watch interval in seconds.
func (c *Config) Interval() float64 {
	return c.GetFloat64(KeyInterval)
}

// ComposeFile returns the configured compose file, or "" to search the
// working directory.
func (c *Config) ComposeFile() string {
	return c.GetString(KeyComposeFile)
}
