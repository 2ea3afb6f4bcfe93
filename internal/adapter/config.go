package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the public GoREST v2 API
	DefaultBaseURL = "https://gorest.co.in/public/v2/"

	envPrefix      = "ROSTER"
	configFileName = "config.yaml"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Retry   RetryConfig   `mapstructure:"retry"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds API connection settings
type ServerConfig struct {
	URL   string `mapstructure:"url"`   // API base URL
	Token string `mapstructure:"token"` // Static bearer token
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// RetryConfig holds the list load retry policy
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	Delay      time.Duration `mapstructure:"delay"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	TimeFormat string `mapstructure:"time_format"` // Go layout for observed times
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // path, or "stderr"
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:   DefaultBaseURL,
			Token: "",
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Retry: RetryConfig{
			MaxRetries: 3,
			Delay:      3 * time.Second,
		},
		UI: UIConfig{
			TimeFormat: "03:04 PM",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "roster", "roster.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "roster", "roster.log")
	}
}

// defaultConfigDir returns the default config directory for the current OS
func defaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "roster")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "roster")
	}
}

// ConfigPath returns the file SaveConfig writes to. An explicit path wins.
func ConfigPath(configFile string) string {
	if configFile != "" {
		return configFile
	}
	return filepath.Join(defaultConfigDir(), configFileName)
}

// newViper registers every key with its default so environment variables
// can override keys that are absent from the file.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("server.url", def.Server.URL)
	v.SetDefault("server.token", def.Server.Token)
	v.SetDefault("http.timeout", def.HTTP.Timeout)
	v.SetDefault("retry.max_retries", def.Retry.MaxRetries)
	v.SetDefault("retry.delay", def.Retry.Delay)
	v.SetDefault("ui.time_format", def.UI.TimeFormat)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	// Environment variable overrides: ROSTER_SERVER_TOKEN etc.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment. With an empty
// configFile the default config directory and "." are searched.
func LoadConfig(configFile string) (*Config, error) {
	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigDir())
		v.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML to ConfigPath(configFile)
func SaveConfig(cfg *Config, configFile string) error {
	path := ConfigPath(configFile)

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to keep snake_case key names
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.token", cfg.Server.Token)
	v.Set("http.timeout", cfg.HTTP.Timeout.String())
	v.Set("retry.max_retries", cfg.Retry.MaxRetries)
	v.Set("retry.delay", cfg.Retry.Delay.String())
	v.Set("ui.time_format", cfg.UI.TimeFormat)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file holds a credential
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict config file permissions: %w", err)
	}

	return nil
}

// IsConfigured returns true if the server URL and token are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.Token != ""
}

// SaveToken updates only the token in the existing config
func SaveToken(token, configFile string) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	cfg.Server.Token = token
	return SaveConfig(cfg, configFile)
}
