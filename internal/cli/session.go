package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/rpgdash/internal/ports/primary"
	"github.com/example/rpgdash/internal/wire"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Schedule game sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled sessions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wire.SessionAdapter().List(cmd.Context())
	},
}

var sessionAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Schedule a session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, _ := cmd.Flags().GetString("at")
		var input primary.SessionInput
		input.Address, _ = cmd.Flags().GetString("address")
		input.CampaignName, _ = cmd.Flags().GetString("campaign")
		input.Notes, _ = cmd.Flags().GetString("notes")

		_, err := wire.SessionAdapter().Add(cmd.Context(), strings.Join(args, " "), at, input)
		return err
	},
}

var sessionRemoveCmd = &cobra.Command{
	Use:     "remove [session-id]",
	Aliases: []string{"rm"},
	Short:   "Remove a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SessionAdapter().Remove(cmd.Context(), args[0])
	},
}

func init() {
	sessionAddCmd.Flags().String("at", "", "When: YYYY-MM-DD HH:MM (local) or RFC 3339")
	sessionAddCmd.Flags().String("address", "", "Where the session takes place")
	sessionAddCmd.Flags().String("campaign", "", "Campaign name shown on the invite")
	sessionAddCmd.Flags().String("notes", "", "Session notes")
	_ = sessionAddCmd.MarkFlagRequired("at")

	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionRemoveCmd)
}

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	return sessionCmd
}
