package config

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the resolved configuration for one invocation.
type Settings struct {
	Repeats       int
	FileIORepeats int
	Output        string
	Timeout       time.Duration
	StrictLabels  bool
	Verbose       bool
	LogFile       string
	MetricsFile   string
	MetricsAddr   string
	History       HistorySettings
}

// HistorySettings selects where averaged runs are stored.
type HistorySettings struct {
	Enabled bool
	Type    string
	DSN     string
}

// durationSetting accepts either a duration ("90s", time.Duration) or a
// plain number of seconds.
func durationSetting(key string) time.Duration {
	switch v := viper.Get(key).(type) {
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		return time.Duration(viper.GetFloat64(key) * float64(time.Second))
	case string:
		if secs, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsInf(secs, 0) && !math.IsNaN(secs) {
			return time.Duration(secs * float64(time.Second))
		}
	}
	return viper.GetDuration(key)
}

// Current reads the settings from viper.
func Current() Settings {
	return Settings{
		Repeats:       viper.GetInt("repeats"),
		FileIORepeats: viper.GetInt("fileio_repeats"),
		Output:        viper.GetString("output"),
		Timeout:       durationSetting("timeout"),
		StrictLabels:  viper.GetBool("strict_labels"),
		Verbose:       viper.GetBool("verbose"),
		LogFile:       viper.GetString("log_file"),
		MetricsFile:   viper.GetString("metrics_file"),
		MetricsAddr:   viper.GetString("metrics_addr"),
		History: HistorySettings{
			Enabled: viper.GetBool("history.enabled"),
			Type:    viper.GetString("history.type"),
			DSN:     viper.GetString("history.dsn"),
		},
	}
}
