package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/rpgdash/internal/wire"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in to sync the dashboard across devices",
	Long: `Manage the sync session.

While signed in, every change is mirrored to the configured remote store and
the remote copy is pulled on start. Signing out keeps the local document.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Sign in with a session token (use - to read it from stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := args[0]
		if token == "-" {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			token = string(raw)
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return fmt.Errorf("token must not be empty")
		}
		return wire.SyncAdapter().Login(cmd.Context(), token)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of this device",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SyncAdapter().Logout(cmd.Context())
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wire.SyncAdapter().AuthStatus(cmd.Context())
	},
}

var authMintCmd = &cobra.Command{
	Use:   "mint [user-id]",
	Short: "Issue a session token signed with the configured secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		_, err := wire.SyncAdapter().Mint(args[0], email, ttl)
		return err
	},
}

func init() {
	authMintCmd.Flags().String("email", "", "Email carried in the token")
	authMintCmd.Flags().Duration("ttl", 30*24*time.Hour, "Token lifetime")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authMintCmd)
}

// AuthCmd returns the auth command
func AuthCmd() *cobra.Command {
	return authCmd
}
