// Package config handles daemon configuration using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the daemon's application-level configuration: everything that
// governs how keyrd runs, as distinct from the device remapping rules
// themselves, which live in per-device profile files (package profile).
type Config struct {
	Daemon  DaemonConfig   `mapstructure:"daemon"`
	Logging LoggingConfig  `mapstructure:"logging"`
	Devices []DeviceConfig `mapstructure:"devices"`
}

// DaemonConfig controls the runtime loop and control channel.
type DaemonConfig struct {
	ControlSocket  string `mapstructure:"control_socket"`
	ProfilesDir    string `mapstructure:"profiles_dir"`
	TickIntervalMs int    `mapstructure:"tick_interval_ms"`
	TapHoldN       int    `mapstructure:"tap_hold_capacity"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"` // "text" or "json"
	ReportCaller bool `mapstructure:"report_caller"`
}

// DeviceConfig binds one physical input device (by its evdev device name)
// to a named profile.
type DeviceConfig struct {
	Identifier string `mapstructure:"identifier"`
	Profile    string `mapstructure:"profile"`
	Enabled    bool   `mapstructure:"enabled"`
}

var (
	// DefaultConfig provides sensible defaults.
	DefaultConfig = Config{
		Daemon: DaemonConfig{
			ControlSocket:  defaultControlSocket(),
			ProfilesDir:    defaultProfilesDir(),
			TickIntervalMs: 10,
			TapHoldN:       32,
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "text",
			ReportCaller: false,
		},
		Devices: []DeviceConfig{},
	}

	cfg *Config
)

// Init initializes the configuration system, reading keyrd.toml from the
// standard search path and falling back to DefaultConfig for anything unset.
func Init() error {
	viper.SetConfigName("keyrd")
	viper.SetConfigType("toml")

	viper.AddConfigPath("/etc/keyrd")

	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		viper.AddConfigPath(filepath.Join("/home", sudoUser, ".config", "keyrd"))
	} else if home := os.Getenv("HOME"); home != "" && home != "/root" {
		viper.AddConfigPath(filepath.Join(home, ".config", "keyrd"))
	}

	viper.AddConfigPath(".")

	viper.SetDefault("daemon", DefaultConfig.Daemon)
	viper.SetDefault("logging", DefaultConfig.Logging)
	viper.SetDefault("devices", DefaultConfig.Devices)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return nil
}

// Get returns the current configuration, or DefaultConfig if Init was never
// called.
func Get() *Config {
	if cfg == nil {
		return &DefaultConfig
	}
	return cfg
}

// Save persists the current configuration to its file.
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		if os.IsPermission(err) && strings.Contains(configPath, "/etc/") {
			return fmt.Errorf("failed to create config directory %s: permission denied. Try running with sudo", dir)
		}
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() string {
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	if os.Getuid() == 0 || os.Getenv("SUDO_USER") != "" {
		return "/etc/keyrd/keyrd.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/keyrd/keyrd.toml"
	}

	return filepath.Join(home, ".config", "keyrd", "keyrd.toml")
}

// AddDevice binds identifier to profile, replacing any existing binding for
// the same identifier.
func AddDevice(dev DeviceConfig) error {
	cfg := Get()

	for i, d := range cfg.Devices {
		if d.Identifier == dev.Identifier {
			cfg.Devices[i] = dev
			viper.Set("devices", cfg.Devices)
			return Save()
		}
	}

	cfg.Devices = append(cfg.Devices, dev)
	viper.Set("devices", cfg.Devices)
	return Save()
}

// RemoveDevice removes identifier's binding.
func RemoveDevice(identifier string) error {
	cfg := Get()

	for i, d := range cfg.Devices {
		if d.Identifier == identifier {
			cfg.Devices = append(cfg.Devices[:i], cfg.Devices[i+1:]...)
			viper.Set("devices", cfg.Devices)
			return Save()
		}
	}

	return fmt.Errorf("device %s not found", identifier)
}

// GetDevice returns identifier's binding, if any.
func GetDevice(identifier string) (*DeviceConfig, error) {
	cfg := Get()

	for _, d := range cfg.Devices {
		if d.Identifier == identifier {
			return &d, nil
		}
	}

	return nil, fmt.Errorf("device %s not found", identifier)
}

// ListDevices returns all configured device bindings.
func ListDevices() []DeviceConfig {
	cfg := Get()
	return cfg.Devices
}

// UpdateDaemon updates the daemon section and persists it.
func UpdateDaemon(d DaemonConfig) error {
	viper.Set("daemon", d)
	cfg.Daemon = d
	return Save()
}

// UpdateLogging updates the logging section and persists it.
func UpdateLogging(l LoggingConfig) error {
	viper.Set("logging", l)
	cfg.Logging = l
	return Save()
}

func defaultControlSocket() string {
	if os.Getuid() == 0 {
		return "/run/keyrd/keyrd.sock"
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "keyrd.sock")
	}
	return "/tmp/keyrd.sock"
}

func defaultProfilesDir() string {
	if os.Getuid() == 0 || os.Getenv("SUDO_USER") != "" {
		return "/etc/keyrd/profiles"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/keyrd/profiles"
	}
	return filepath.Join(home, ".config", "keyrd", "profiles")
}
