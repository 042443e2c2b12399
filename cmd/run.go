package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/keyrd/internal/config"
	"github.com/bnema/keyrd/internal/control"
	"github.com/bnema/keyrd/internal/daemon"
	"github.com/bnema/keyrd/internal/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the keyrd remapping daemon in the foreground",
	Long: `Run starts capturing every enabled device binding from the configuration,
remapping its key events and injecting the result through a virtual
keyboard, until interrupted.`,
	RunE: runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("running the daemon requires root privileges for evdev/uinput access\nPlease run with: sudo keyrd run")
	}

	cfg := config.Get()

	manager, err := daemon.NewManager(cfg.Daemon)
	if err != nil {
		return fmt.Errorf("initializing daemon: %w", err)
	}

	socket := control.NewServer(cfg.Daemon.ControlSocket, daemon.NewControlHandler(manager))
	if err := socket.Start(); err != nil {
		return fmt.Errorf("starting control socket: %w", err)
	}
	defer socket.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("keyrd daemon starting, control socket at %s", cfg.Daemon.ControlSocket)
	if err := manager.Run(ctx, cfg.Devices); err != nil {
		return fmt.Errorf("daemon stopped: %w", err)
	}
	logger.Info("keyrd daemon stopped")
	return nil
}
