package config

import (
	"fmt"
	"runtime"
	"strings"

	internal "github.com/ZanzyTHEbar/pathkit/pathkit"

	"github.com/spf13/viper"
)

// Config stores all configuration of the library.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Pathkit PathkitConfig `mapstructure:"pathkit"`
}

// PathkitConfig stores pathkit specific configurations.
type PathkitConfig struct {
	Query QueryConfig `mapstructure:"query"`
}

// QueryConfig stores the filesystem query dispatcher settings.
type QueryConfig struct {
	MaxWorkers       int `mapstructure:"maxWorkers"`
	QueueDepth       int `mapstructure:"queueDepth"`
	OpTimeoutSeconds int `mapstructure:"opTimeoutSeconds"`
}

var AppConfig Config

// DefaultMaxWorkers returns the worker count used when none is configured.
// CPU cores * 2 for I/O bound operations, clamped to keep the pool responsive
// without exhausting OS threads.
func DefaultMaxWorkers() int {
	return min(max(runtime.NumCPU()*2, 4), 32)
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("pathkit.query.maxWorkers", DefaultMaxWorkers())
	viper.SetDefault("pathkit.query.queueDepth", internal.DefaultQueueDepth)
	viper.SetDefault("pathkit.query.opTimeoutSeconds", internal.DefaultOpTimeoutSeconds)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. pathkit.query.maxWorkers becomes PATHKIT_QUERY_MAXWORKERS

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used. Not an error worth halting on.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
