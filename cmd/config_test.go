package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnema/keyrd/internal/config"
)

func TestConfigInit(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "keyrd-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", originalHome)

	viper.Reset()

	t.Run("creates config file when it doesn't exist", func(t *testing.T) {
		if err := executeCommand(rootCmd, "config", "init"); err != nil {
			t.Errorf("config init failed: %v", err)
		}

		configPath := filepath.Join(tmpDir, ".config", "keyrd", "keyrd.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			t.Error("Config file was not created")
		}
	})

	t.Run("doesn't overwrite existing config without force", func(t *testing.T) {
		viper.Reset()

		configPath := filepath.Join(tmpDir, ".config", "keyrd", "keyrd.toml")
		os.WriteFile(configPath, []byte("test = true"), 0644)

		if err := executeCommand(rootCmd, "config", "init"); err != nil {
			t.Errorf("config init failed: %v", err)
		}

		content, _ := os.ReadFile(configPath)
		if string(content) != "test = true" {
			t.Error("Config file was overwritten without --force")
		}
	})

	t.Run("overwrites with force flag", func(t *testing.T) {
		viper.Reset()

		configPath := filepath.Join(tmpDir, ".config", "keyrd", "keyrd.toml")
		os.WriteFile(configPath, []byte("test = true"), 0644)

		if err := executeCommand(rootCmd, "config", "init", "--force"); err != nil {
			t.Errorf("config init --force failed: %v", err)
		}

		content, _ := os.ReadFile(configPath)
		if string(content) == "test = true" {
			t.Error("Config file was not overwritten")
		}
	})
}

func TestConfigShow(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "keyrd-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", originalHome)

	viper.Reset()

	t.Run("shows default config when no file exists", func(t *testing.T) {
		if err := executeCommand(rootCmd, "config", "show"); err != nil {
			t.Errorf("config show failed: %v", err)
		}
	})
}

func TestConfigValidation(t *testing.T) {
	t.Run("validates TOML syntax", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "keyrd-test-*")
		if err != nil {
			t.Fatal(err)
		}
		defer os.RemoveAll(tmpDir)

		configDir := filepath.Join(tmpDir, ".config", "keyrd")
		os.MkdirAll(configDir, 0755)

		configPath := filepath.Join(configDir, "keyrd.toml")
		invalidTOML := `
[daemon
tick_interval_ms = 10
`
		os.WriteFile(configPath, []byte(invalidTOML), 0644)

		originalHome := os.Getenv("HOME")
		os.Setenv("HOME", tmpDir)
		defer os.Setenv("HOME", originalHome)

		viper.Reset()

		err = config.Init()
		if err == nil {
			t.Error("Expected error for invalid TOML, got nil")
		}
		if err != nil && !contains(err.Error(), "parsing") {
			t.Errorf("Expected TOML parsing error, got: %v", err)
		}
	})
}

func executeCommand(root *cobra.Command, args ...string) error {
	root.SetArgs(args)
	return root.Execute()
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
