package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/rpgdash/internal/config"
	"github.com/example/rpgdash/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var (
		local  string
		remote string
		secret bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config.yaml and create the local database",
		Long: `Initialize the data directory with a config.yaml and the local database.

Examples:
  rpgdash init                              # local-only, sqlite slots
  rpgdash init --remote sqlite --secret     # shared sqlite remote with a new token secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataFlag, _ := cmd.Flags().GetString("data-dir")
			dataDir, err := config.ResolveDataDir(dataFlag)
			if err != nil {
				return err
			}

			path := filepath.Join(dataDir, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default(dataDir)
			cfg.Local.Backend = local
			cfg.Remote.Backend = remote
			if secret {
				buf := make([]byte, 32)
				if _, err := rand.Read(buf); err != nil {
					return fmt.Errorf("failed to generate secret: %w", err)
				}
				cfg.Auth.Secret = hex.EncodeToString(buf)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Config written to %s\n", path)

			dbPath := db.DefaultPath(dataDir)
			if cfg.Local.Backend == config.LocalSQLite {
				dbPath = cfg.LocalPath()
			}
			database, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			database.Close()
			fmt.Fprintf(out, "✓ Database initialized at %s\n", dbPath)

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  rpgdash campaign show")
			fmt.Fprintln(out, "  rpgdash character list")
			if cfg.AuthConfigured() && cfg.Remote.Backend != config.RemoteNone {
				fmt.Fprintln(out, "  rpgdash auth mint <user-id> | rpgdash auth login -")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&local, "local", config.LocalSQLite, "Local slot backend (sqlite or file)")
	cmd.Flags().StringVar(&remote, "remote", config.RemoteNone, "Remote backend (sqlite or s3, empty for none)")
	cmd.Flags().BoolVar(&secret, "secret", false, "Generate a token signing secret")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config.yaml")

	return cmd
}
