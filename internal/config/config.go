// Package config provides centralized configuration management for the
// fitness advisor. It supports loading from a .env file, YAML files, and
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Profile ProfileConfig `yaml:"profile"`
	Advisor AdvisorConfig `yaml:"advisor"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	RateLimit    int           `yaml:"rate_limit"` // requests per minute per IP
}

// ProfileConfig holds the default body measurements used when the caller
// doesn't supply any. Hard bounds live in the domain package.
type ProfileConfig struct {
	DefaultWeightKg float64 `yaml:"default_weight_kg"`
	DefaultHeightCm float64 `yaml:"default_height_cm"`
}

// AdvisorConfig holds advisor settings
type AdvisorConfig struct {
	HistoryTail int `yaml:"history_tail"` // records shown in history views
}

// CatalogConfig holds optional catalog overlay file paths
type CatalogConfig struct {
	ActivitiesFile string `yaml:"activities_file"`
	KnowledgeFile  string `yaml:"knowledge_file"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	EnableFile  bool   `yaml:"enable_file"`
	EnableJSON  bool   `yaml:"enable_json"`
	EnableColor bool   `yaml:"enable_color"`
	LogDir      string `yaml:"log_dir"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8000,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit:    100,
		},
		Profile: ProfileConfig{
			DefaultWeightKg: 70,
			DefaultHeightCm: 170,
		},
		Advisor: AdvisorConfig{
			HistoryTail: 7,
		},
		Catalog: CatalogConfig{},
		Logging: LoggingConfig{
			Level:       "info",
			EnableFile:  true,
			EnableJSON:  true,
			EnableColor: true,
			LogDir:      "logs",
		},
	}
}

// Get returns the global configuration (singleton)
func Get() *Config {
	configOnce.Do(func() {
		globalConfig = DefaultConfig()
		loadDotEnv()
		loadConfigFile()
		loadEnvOverrides()
	})
	return globalConfig
}

// Reload reloads the configuration from file
func Reload() error {
	globalConfig = DefaultConfig()
	loadDotEnv()
	loadConfigFile()
	loadEnvOverrides()
	return nil
}

// loadDotEnv loads a .env file into the environment if one exists.
// Existing environment variables win over .env values.
func loadDotEnv() {
	_ = godotenv.Load()
}

// loadConfigFile loads configuration from config.yaml
func loadConfigFile() {
	paths := []string{
		"config.yaml",
		"config.yml",
		filepath.Join(getExecutableDir(), "config.yaml"),
		filepath.Join(getExecutableDir(), "config.yml"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		if err := yaml.Unmarshal(data, globalConfig); err != nil {
			continue
		}
		break
	}
}

// loadEnvOverrides applies environment variable overrides
func loadEnvOverrides() {
	if port := os.Getenv("FIT_ADVISOR_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			globalConfig.Server.Port = p
		}
	}

	if level := os.Getenv("FIT_ADVISOR_LOG_LEVEL"); level != "" {
		globalConfig.Logging.Level = level
	}

	if path := os.Getenv("FIT_ADVISOR_ACTIVITIES_FILE"); path != "" {
		globalConfig.Catalog.ActivitiesFile = path
	}
	if path := os.Getenv("FIT_ADVISOR_KNOWLEDGE_FILE"); path != "" {
		globalConfig.Catalog.KnowledgeFile = path
	}

	if weight := os.Getenv("FIT_ADVISOR_DEFAULT_WEIGHT"); weight != "" {
		if w, err := strconv.ParseFloat(weight, 64); err == nil && w > 0 {
			globalConfig.Profile.DefaultWeightKg = w
		}
	}
	if height := os.Getenv("FIT_ADVISOR_DEFAULT_HEIGHT"); height != "" {
		if h, err := strconv.ParseFloat(height, 64); err == nil && h > 0 {
			globalConfig.Profile.DefaultHeightCm = h
		}
	}

	// Lambda detection - no writable working directory for log files
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		globalConfig.Logging.EnableFile = false
		globalConfig.Logging.EnableColor = false
	}
}

// getExecutableDir returns the directory containing the executable
func getExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// IsLambda returns true if running in AWS Lambda
func IsLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}
