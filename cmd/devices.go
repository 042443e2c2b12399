package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/keyrd/internal/config"
	"github.com/bnema/keyrd/internal/driver/evdevcapture"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected keyboards and their profile bindings",
	Long:  `Enumerate physical keyboards visible to keyrd and show which profile, if any, is bound to each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyboards, err := evdevcapture.ListKeyboards()
		if err != nil {
			return fmt.Errorf("enumerating keyboards: %w", err)
		}

		bindings := make(map[string]config.DeviceConfig)
		for _, d := range config.ListDevices() {
			bindings[d.Identifier] = d
		}

		if len(keyboards) == 0 {
			fmt.Println("No keyboards found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH\tPROFILE\tENABLED")
		for _, k := range keyboards {
			profile := "-"
			enabled := "no"
			if b, ok := bindings[k.Name]; ok {
				profile = b.Profile
				if b.Enabled {
					enabled = "yes"
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k.Name, k.Path, profile, enabled)
		}
		return w.Flush()
	},
}
