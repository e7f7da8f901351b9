package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/rpgdash/internal/wire"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Show and edit the campaign",
}

var campaignShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the campaign summary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wire.CampaignAdapter().Show(cmd.Context())
	},
}

var campaignRenameCmd = &cobra.Command{
	Use:   "rename [name]",
	Short: "Rename the campaign",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CampaignAdapter().Rename(cmd.Context(), strings.Join(args, " "))
	},
}

var campaignSystemCmd = &cobra.Command{
	Use:   "system [system]",
	Short: "Set the campaign's game system",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wire.CampaignAdapter().SetSystem(cmd.Context(), strings.Join(args, " "))
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Show and edit the campaign notes",
}

var notesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the campaign notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wire.CampaignAdapter().ShowNotes(cmd.Context())
	},
}

var notesSetCmd = &cobra.Command{
	Use:   "set [text]",
	Short: "Replace the campaign notes",
	Long:  "Replace the campaign notes with the given text, the contents of --file, or stdin when --file is -.",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		var notes string
		switch {
		case file != "" && len(args) > 0:
			return fmt.Errorf("pass the notes as text or --file, not both")
		case file == "-":
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			notes = string(data)
		case file != "":
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read notes file: %w", err)
			}
			notes = string(data)
		case len(args) > 0:
			notes = strings.Join(args, " ")
		default:
			return fmt.Errorf("must specify the notes text or --file")
		}

		wire.CampaignAdapter().SetNotes(cmd.Context(), notes)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace everything with the sample campaign",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("reset discards every character, session and note, re-run with --yes to confirm")
		}
		wire.CampaignAdapter().Reset(cmd.Context())
		return nil
	},
}

func init() {
	notesSetCmd.Flags().StringP("file", "f", "", "Read notes from a file (- for stdin)")
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")

	campaignCmd.AddCommand(campaignShowCmd)
	campaignCmd.AddCommand(campaignRenameCmd)
	campaignCmd.AddCommand(campaignSystemCmd)

	notesCmd.AddCommand(notesShowCmd)
	notesCmd.AddCommand(notesSetCmd)
}

// CampaignCmd returns the campaign command
func CampaignCmd() *cobra.Command {
	return campaignCmd
}

// NotesCmd returns the notes command
func NotesCmd() *cobra.Command {
	return notesCmd
}

// ResetCmd returns the reset command
func ResetCmd() *cobra.Command {
	return resetCmd
}
