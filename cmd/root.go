package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/keyrd/internal/config"
	"github.com/bnema/keyrd/internal/logger"
)

var (
	// Version is set during build.
	Version = "0.1.0-dev"
	Commit  = ""
	Date    = ""

	rootCmd = &cobra.Command{
		Use:   "keyrd",
		Short: "keyrd - per-device keyboard remapping daemon",
		Long: `keyrd captures events from physical keyboards and re-emits remapped
output through a virtual uinput device: custom modifier layers, custom
locks, tap-hold keys, modified-output chords, and conditional mappings,
all driven by per-device TOML profiles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			logger.SetLevel(config.Get().Logging.Level)
			return nil
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
