package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/rpgdash/internal/wire"
)

var refCmd = &cobra.Command{
	Use:     "ref",
	Aliases: []string{"attachment"},
	Short:   "Store reference files (maps, handouts, rules)",
	Long: `Keep reference files next to the dashboard.

Files are stored in the local database and never leave this device.`,
}

var refAddCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Store a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		category, _ := cmd.Flags().GetString("category")
		mime, _ := cmd.Flags().GetString("mime")
		_, err := wire.AttachmentAdapter().Add(cmd.Context(), args[0], name, category, mime)
		return err
	},
}

var refListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		_, err := wire.AttachmentAdapter().List(cmd.Context(), category)
		return err
	},
}

var refGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Write a stored file to disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		_, err := wire.AttachmentAdapter().Save(cmd.Context(), args[0], out)
		return err
	},
}

var refRemoveCmd = &cobra.Command{
	Use:     "remove [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a stored file",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AttachmentAdapter().Remove(cmd.Context(), args[0])
	},
}

func init() {
	refAddCmd.Flags().String("name", "", "Stored name (defaults to the file name)")
	refAddCmd.Flags().StringP("category", "c", "", "Category, e.g. map or handout")
	refAddCmd.Flags().String("mime", "", "MIME type (detected when empty)")

	refListCmd.Flags().StringP("category", "c", "", "Only list this category")

	refGetCmd.Flags().StringP("out", "o", "", "Destination file or directory (default: current directory)")

	refCmd.AddCommand(refAddCmd)
	refCmd.AddCommand(refListCmd)
	refCmd.AddCommand(refGetCmd)
	refCmd.AddCommand(refRemoveCmd)
}

// RefCmd returns the ref command
func RefCmd() *cobra.Command {
	return refCmd
}
