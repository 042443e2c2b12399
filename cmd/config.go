package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/keyrd/internal/config"
	"github.com/bnema/keyrd/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage keyrd daemon configuration",
	Long:  `Manage keyrd's daemon-level configuration: the control socket, profiles directory, tick interval, and device bindings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		logger.Info("Current Configuration:")
		logger.Infof("Config file: %s", config.GetConfigPath())

		logger.Info("\n[Daemon]")
		logger.Infof("  Control Socket: %s", cfg.Daemon.ControlSocket)
		logger.Infof("  Profiles Dir: %s", cfg.Daemon.ProfilesDir)
		logger.Infof("  Tick Interval: %dms", cfg.Daemon.TickIntervalMs)
		logger.Infof("  Tap-Hold Capacity: %d", cfg.Daemon.TapHoldN)

		logger.Info("\n[Logging]")
		logger.Infof("  Level: %s", cfg.Logging.Level)
		logger.Infof("  Format: %s", cfg.Logging.Format)
		logger.Infof("  Report Caller: %v", cfg.Logging.ReportCaller)

		if len(cfg.Devices) > 0 {
			logger.Info("\n[Devices]")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			if _, err := fmt.Fprintln(w, "  Identifier\tProfile\tEnabled"); err != nil {
				logger.Errorf("failed to write header: %v", err)
			}
			for _, d := range cfg.Devices {
				if _, err := fmt.Fprintf(w, "  %s\t%s\t%v\n", d.Identifier, d.Profile, d.Enabled); err != nil {
					logger.Errorf("failed to write device row: %v", err)
				}
			}
			if err := w.Flush(); err != nil {
				logger.Errorf("failed to flush writer: %v", err)
			}
		}

		return nil
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save current configuration to file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration saved to: %s", config.GetConfigPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Infof("Configuration file already exists at: %s", configPath)
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		if err := config.Save(); err != nil {
			return err
		}

		logger.Infof("Configuration initialized at: %s", configPath)
		logger.Info("\nYou can now:")
		logger.Info("  - Edit the configuration file directly")
		logger.Info("  - Use 'keyrd config device add' to bind a keyboard to a profile")
		logger.Info("  - Use 'keyrd config show' to view current settings")

		return nil
	},
}

var configDeviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage device-to-profile bindings",
}

var configDeviceAddCmd = &cobra.Command{
	Use:   "add <identifier> <profile>",
	Short: "Bind a keyboard identifier to a profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		disabled, _ := cmd.Flags().GetBool("disabled")

		dev := config.DeviceConfig{
			Identifier: args[0],
			Profile:    args[1],
			Enabled:    !disabled,
		}
		if err := config.AddDevice(dev); err != nil {
			return err
		}
		logger.Infof("Bound device %q to profile %q", dev.Identifier, dev.Profile)
		return nil
	},
}

var configDeviceRemoveCmd = &cobra.Command{
	Use:   "remove <identifier>",
	Short: "Remove a device binding",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.RemoveDevice(args[0]); err != nil {
			return err
		}
		logger.Infof("Removed device binding %q", args[0])
		return nil
	},
}

var configDeviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured device bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices := config.ListDevices()
		if len(devices) == 0 {
			logger.Info("No devices configured")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "IDENTIFIER\tPROFILE\tENABLED")
		for _, d := range devices {
			fmt.Fprintf(w, "%s\t%s\t%v\n", d.Identifier, d.Profile, d.Enabled)
		}
		return w.Flush()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configDeviceCmd)

	configDeviceCmd.AddCommand(configDeviceAddCmd)
	configDeviceCmd.AddCommand(configDeviceRemoveCmd)
	configDeviceCmd.AddCommand(configDeviceListCmd)

	configDeviceAddCmd.Flags().Bool("disabled", false, "Add the binding without enabling it")
	configInitCmd.Flags().Bool("force", false, "Force overwrite existing configuration")
}
