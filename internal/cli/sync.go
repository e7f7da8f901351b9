package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/rpgdash/internal/wire"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Inspect and drive remote sync",
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.SyncAdapter().Status(cmd.Context())
		return err
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Write the current document to the remote now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SyncAdapter().Push(cmd.Context())
	},
}

func init() {
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncPushCmd)
}

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	return syncCmd
}
