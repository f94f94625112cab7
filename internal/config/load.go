package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default values. Commands are compiled in (see internal/benchmark); these
// only tune how the suite is run and where results go.
const (
	DefaultRepeats       = 10
	DefaultFileIORepeats = 1
	DefaultOutput        = "report.md"
	DefaultHistoryType   = "sqlite"
	DefaultHistoryDSN    = ".sbreport.db"
)

// SetDefaults registers every default with viper.
func SetDefaults() {
	viper.SetDefault("repeats", DefaultRepeats)
	viper.SetDefault("fileio_repeats", DefaultFileIORepeats)
	viper.SetDefault("output", DefaultOutput)
	viper.SetDefault("timeout", 0)
	viper.SetDefault("strict_labels", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.type", DefaultHistoryType)
	viper.SetDefault("history.dsn", DefaultHistoryDSN)
}

// Load initializes the configuration from file and environment variables.
// A missing config.yaml is fine; an explicit cfgFile that cannot be read is
// an error.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SBREPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}
