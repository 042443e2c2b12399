package cmd

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/keyrd/internal/config"
	"github.com/bnema/keyrd/internal/control"
	"github.com/bnema/keyrd/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the running daemon's device status live",
	RunE: func(cmd *cobra.Command, args []string) error {
		socketPath := config.Get().Daemon.ControlSocket

		fetch := func() (control.StatusPayload, error) {
			client, err := control.Dial(socketPath)
			if err != nil {
				return control.StatusPayload{}, err
			}
			defer client.Close()
			return client.Status()
		}

		model := ui.NewWatchModel(fetch, 500*time.Millisecond)
		_, err := tea.NewProgram(model).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
