package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the htauth configuration
type Config struct {
	// Credentials
	HtpasswdFile string `mapstructure:"htpasswd_file"` // Path to the htpasswd file

	// Logging settings
	AppLogPath  string `mapstructure:"app_log_path"`  // Optional: application log file, stderr when empty
	AuthLogPath string `mapstructure:"auth_log_path"` // Optional: authentication audit log
	LogLevel    string `mapstructure:"log_level"`     // debug, info, warn or error
}

var configKeys = []string{"htpasswd_file", "app_log_path", "auth_log_path", "log_level"}

// LoadConfig loads configuration from a JSON file and HTAUTH_* environment
// variables. Environment variables take precedence. An empty path reads the
// environment only.
func LoadConfig(path string, config *Config) error {
	v := viper.New()
	v.SetEnvPrefix("HTAUTH")
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}

	baseDir := "."
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		baseDir = filepath.Dir(path)
	}

	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	// Convert relative paths to absolute paths based on config file location
	config.HtpasswdFile = resolvePath(baseDir, config.HtpasswdFile)
	config.AppLogPath = resolvePath(baseDir, config.AppLogPath)
	config.AuthLogPath = resolvePath(baseDir, config.AuthLogPath)

	// Set defaults for optional settings
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return nil
}

// resolvePath joins a relative path onto baseDir; empty and absolute paths are returned as is
func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	joined := filepath.Join(baseDir, p)
	if abs, err := filepath.Abs(joined); err == nil {
		return abs
	}
	return joined
}
