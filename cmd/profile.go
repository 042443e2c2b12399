package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/bnema/keyrd/internal/config"
	"github.com/bnema/keyrd/internal/control"
	"github.com/bnema/keyrd/internal/logger"
	"github.com/bnema/keyrd/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage remapping profiles",
	Long:  `Manage named, per-device remapping profiles stored as TOML rule files.`,
}

func profileManager() (*profile.Manager, error) {
	cfg := config.Get().Daemon
	return profile.NewManager(cfg.ProfilesDir, cfg.TapHoldN)
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := profileManager()
		if err != nil {
			return err
		}
		infos, err := m.List()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			logger.Info("No profiles found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDEVICES\tRULES\tACTIVE\tMODIFIED")
		for _, info := range infos {
			active := ""
			if info.Active {
				active = "*"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
				info.Name, info.DeviceCount, info.LayerCount, active,
				info.ModifiedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var profileActivateCmd = &cobra.Command{
	Use:   "activate [name]",
	Short: "Activate a profile, prompting interactively if name is omitted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := profileManager()
		if err != nil {
			return err
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		} else {
			infos, err := m.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				return fmt.Errorf("no profiles available to activate")
			}
			options := make([]huh.Option[string], 0, len(infos))
			for _, info := range infos {
				options = append(options, huh.NewOption(info.Name, info.Name))
			}
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Activate which profile?").
						Options(options...).
						Value(&name),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("profile selection cancelled: %w", err)
			}
		}

		if err := m.Activate(name); err != nil {
			return err
		}
		logger.Infof("Activated profile %q", name)

		device, _ := cmd.Flags().GetString("device")
		if device == "" {
			logger.Info("Run with --device <identifier> to reload a live daemon device, or restart 'keyrd run'")
			return nil
		}

		socketPath := config.Get().Daemon.ControlSocket
		client, err := control.Dial(socketPath)
		if err != nil {
			logger.Warnf("keyrd daemon not reachable at %s; profile saved but not live-reloaded", socketPath)
			return nil
		}
		defer client.Close()

		if err := client.Activate(device, name); err != nil {
			return fmt.Errorf("reloading device %q: %w", device, err)
		}
		logger.Infof("Reloaded device %q with profile %q", device, name)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := profileManager()
		if err != nil {
			return err
		}
		if err := m.Delete(args[0]); err != nil {
			return err
		}
		logger.Infof("Deleted profile %q", args[0])
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileActivateCmd)
	profileCmd.AddCommand(profileDeleteCmd)

	profileActivateCmd.Flags().String("device", "", "Identifier of a live daemon device to reload with this profile")
}
