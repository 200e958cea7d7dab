package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"prioritizer/internal/daemon"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Inspect the prioritizerd daemon",
	Long: `prioritizerd serves the board over a unix socket and pushes changes to
running TUIs. Start it with 'prioritizerd'.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the daemon is running",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(getContext(), 2*time.Second)
		defer cancel()

		socket := cfg.SocketPath()
		err := daemon.NewClient(cfg).Ping(ctx)
		status := struct {
			Running bool   `json:"running" yaml:"running"`
			Socket  string `json:"socket" yaml:"socket"`
		}{Running: err == nil, Socket: socket}

		if formatter.IsStructured() {
			return formatter.Print(status)
		}
		if status.Running {
			printer.Success("prioritizerd is running on %s", socket)
			return nil
		}
		printer.Warning("prioritizerd is not running (%s)", socket)
		container.Logger.WithError(err).Debug("ping failed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
}
