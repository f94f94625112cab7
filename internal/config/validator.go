package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var historyTypes = map[string]bool{
	"":           true,
	"sqlite":     true,
	"sqlite3":    true,
	"postgres":   true,
	"postgresql": true,
}

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if repeats := viper.GetInt("repeats"); repeats <= 0 {
		errors = append(errors, fmt.Sprintf("repeats must be positive, got: %d", repeats))
	}

	if repeats := viper.GetInt("fileio_repeats"); repeats <= 0 {
		errors = append(errors, fmt.Sprintf("fileio_repeats must be positive, got: %d", repeats))
	}

	// Zero disables the timeout.
	if timeout := durationSetting("timeout"); timeout < 0 {
		errors = append(errors, fmt.Sprintf("timeout must not be negative, got: %v", timeout))
	}

	if strings.TrimSpace(viper.GetString("output")) == "" {
		errors = append(errors, "output must not be empty")
	}

	if t := strings.ToLower(viper.GetString("history.type")); !historyTypes[t] {
		errors = append(errors, fmt.Sprintf("history.type must be sqlite or postgres, got: %q", t))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
