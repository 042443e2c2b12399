package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bnema/keyrd/internal/config"
	"github.com/bnema/keyrd/internal/control"
	"github.com/bnema/keyrd/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the running keyrd daemon",
	Long:  `Report every device the daemon currently has captured, its bound profile, and how many tap-hold keys it is tracking (pending or held).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		socketPath := config.Get().Daemon.ControlSocket

		client, err := control.Dial(socketPath)
		if err != nil {
			fmt.Println(ui.FormatStatus(false, "keyrd daemon is not running"))
			return nil
		}
		defer client.Close()

		status, err := client.Status()
		if err != nil {
			return fmt.Errorf("requesting status: %w", err)
		}

		var out strings.Builder
		out.WriteString(ui.HeaderStyle.Render("KEYRD STATUS"))
		out.WriteString("\n")
		out.WriteString(ui.FormatStatus(true, fmt.Sprintf("daemon running, socket %s", socketPath)))
		out.WriteString("\n\n")

		if len(status.Devices) == 0 {
			out.WriteString(ui.SubtleStyle.Italic(true).Render("No devices captured"))
		} else {
			t := table.New().
				Headers("DEVICE", "PROFILE", "PENDING TAP-HOLD").
				Rows(rowsFor(status.Devices)...)
			out.WriteString(t.String())
		}

		fmt.Fprintln(os.Stdout, out.String())
		return nil
	},
}

func rowsFor(devices []control.DeviceStatus) [][]string {
	rows := make([][]string, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, []string{d.Identifier, d.Profile, fmt.Sprintf("%d", d.PendingTapHold)})
	}
	return rows
}
