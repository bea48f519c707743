// Package config loads and stores the user configuration for the mideair
// tools: which GPIO lines drive the emitter and display, the control
// server address, and the default log level.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "mideair"
	configFile = "config.yaml"
)

// Config is the whole configuration file. Stored as versioned YAML in the
// platform config directory.
type Config struct {
	Version  int           `yaml:"version"`
	Emitter  EmitterConfig `yaml:"emitter"`
	Display  DisplayConfig `yaml:"display,omitempty"`
	Server   ServerConfig  `yaml:"server,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty"`
}

// EmitterConfig selects the IR LED line.
type EmitterConfig struct {
	Pin       int  `yaml:"pin"`
	ActiveLow bool `yaml:"active_low"` // boards that sink the LED into the pin
}

// DisplayConfig selects the shift-register display lines.
type DisplayConfig struct {
	DataPin  int `yaml:"data_pin"`
	ClockPin int `yaml:"clock_pin"`
	LatchPin int `yaml:"latch_pin"`
}

// ServerConfig configures the WebSocket control server.
type ServerConfig struct {
	Listen string `yaml:"listen"`
	MDNS   bool   `yaml:"mdns"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		Version: 1,
		Emitter: EmitterConfig{Pin: 17},
		Display: DisplayConfig{DataPin: 10, ClockPin: 11, LatchPin: 8},
		Server:  ServerConfig{Listen: ":8137", MDNS: true},
	}
}

// GetConfigDir returns the OS-appropriate configuration directory.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/mideair or $HOME/.config/mideair
//   - macOS: $HOME/.config/mideair (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\mideair
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration file, returning defaults if it does not
// exist yet.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(configPath)
}

// LoadFile reads a configuration file from an explicit path.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", cfg.Version)
	}

	return &cfg, nil
}

// Save writes the configuration to the platform config directory, creating
// it if needed.
func (c *Config) Save() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, configFile)
	return c.SaveFile(configPath)
}

// SaveFile writes the configuration to an explicit path.
func (c *Config) SaveFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
