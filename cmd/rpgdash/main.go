package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/rpgdash/internal/cli"
	"github.com/example/rpgdash/internal/version"
	"github.com/example/rpgdash/internal/wire"
)

func main() {
	var opts wire.Options

	rootCmd := &cobra.Command{
		Use:     "rpgdash",
		Short:   "rpgdash - tabletop RPG campaign dashboard",
		Version: version.String(),
		Long: `rpgdash keeps a campaign, its character sheets and the session schedule
in one document on this device. Sign in with 'rpgdash auth login' to mirror
the document to a remote store and pick it up on another device.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.Configure(opts)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "Data directory (default: $RPGDASH_DATA_DIR or ~/.rpgdash)")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default: <data-dir>/config.yaml)")

	// Campaign document
	rootCmd.AddCommand(cli.CampaignCmd())
	rootCmd.AddCommand(cli.NotesCmd())
	rootCmd.AddCommand(cli.ResetCmd())
	rootCmd.AddCommand(cli.CharacterCmd())
	rootCmd.AddCommand(cli.ModuleCmd())
	rootCmd.AddCommand(cli.SessionCmd())

	// Sync
	rootCmd.AddCommand(cli.AuthCmd())
	rootCmd.AddCommand(cli.SyncCmd())

	// Local extras
	rootCmd.AddCommand(cli.RefCmd())
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	// Flush the debounced remote write even when the command failed.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	wire.Shutdown(shutdownCtx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
