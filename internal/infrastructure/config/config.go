package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Review   ReviewConfig   `mapstructure:"review"`
	Speech   SpeechConfig   `mapstructure:"speech"`
}

// DatabaseConfig holds the embedded store configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReviewConfig holds the spaced repetition tuning knobs
type ReviewConfig struct {
	// Intervals maps mastery level to days until the next review.
	Intervals []int `mapstructure:"intervals"`
	// FailurePolicy is "reset" (back to level 0) or "step_back".
	FailurePolicy string `mapstructure:"failure_policy"`
	// Threshold is the similarity cut-off for speech grading.
	Threshold float64 `mapstructure:"threshold"`
}

// SpeechConfig holds TTS and recognition settings
type SpeechConfig struct {
	Language string `mapstructure:"language"`
	CacheDir string `mapstructure:"cache_dir"`
	Player   string `mapstructure:"player"`
	Mute     bool   `mapstructure:"mute"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Database defaults
	viper.SetDefault("database.path", "chindospeak.db")

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Review defaults
	viper.SetDefault("review.intervals", []int{0, 1, 3, 5, 10, 24})
	viper.SetDefault("review.failure_policy", "reset")
	viper.SetDefault("review.threshold", 0.6)

	// Speech defaults
	viper.SetDefault("speech.language", "chinese")
	viper.SetDefault("speech.cache_dir", "audio-cache")
	viper.SetDefault("speech.player", "mpv")
	viper.SetDefault("speech.mute", false)
}
