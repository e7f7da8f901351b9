package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/rpgdash/internal/adapters/cli"
	"github.com/example/rpgdash/internal/core/layout"
	"github.com/example/rpgdash/internal/models"
	"github.com/example/rpgdash/internal/wire"
)

var moduleCmd = &cobra.Command{
	Use:   "module",
	Short: "Arrange the modules of a character sheet",
	Long: `Add, edit, and arrange character sheet modules.

The sheet is a three-column grid filled in list order: moving a module up or
down changes its fill priority, left or right changes its column. A module can
be referenced by id, id prefix or its position on the sheet.`,
}

var moduleAddCmd = &cobra.Command{
	Use:   "add [character] [type]",
	Short: "Add a module to a sheet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := cliadapter.AddModuleRequest{
			Type:    args[1],
			Column:  optInt(cmd, "column"),
			Span:    optInt(cmd, "span"),
			RowSpan: optInt(cmd, "rows"),
		}
		req.Title, _ = cmd.Flags().GetString("title")
		req.System, _ = cmd.Flags().GetString("system")

		_, err := wire.ModuleAdapter().Add(cmd.Context(), args[0], req)
		return err
	},
}

var moduleUpdateCmd = &cobra.Command{
	Use:   "update [character] [module]",
	Short: "Edit a module's title, notes or data",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := cliadapter.UpdateModuleRequest{
			Title:  optString(cmd, "title"),
			Notes:  optString(cmd, "notes"),
			System: optString(cmd, "system"),
			Text:   optString(cmd, "text"),
		}
		data, _ := cmd.Flags().GetString("data")
		dataFile, _ := cmd.Flags().GetString("data-file")
		if data != "" && dataFile != "" {
			return fmt.Errorf("--data and --data-file are mutually exclusive")
		}
		if dataFile != "" {
			raw, err := os.ReadFile(dataFile)
			if err != nil {
				return fmt.Errorf("failed to read data file: %w", err)
			}
			data = string(raw)
		}
		req.DataJSON = data

		return wire.ModuleAdapter().Update(cmd.Context(), args[0], args[1], req)
	},
}

var moduleRemoveCmd = &cobra.Command{
	Use:     "remove [character] [module]",
	Aliases: []string{"rm"},
	Short:   "Remove a module from a sheet",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ModuleAdapter().Remove(cmd.Context(), args[0], args[1])
	},
}

var moduleSpanCmd = &cobra.Command{
	Use:   "span [character] [module]",
	Short: "Cycle a module's width 1, 2, 3",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ModuleAdapter().CycleSpan(cmd.Context(), args[0], args[1])
	},
}

var moduleRowSpanCmd = &cobra.Command{
	Use:   "rowspan [character] [module]",
	Short: "Cycle a module's height 1, 2, 3",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ModuleAdapter().CycleRowSpan(cmd.Context(), args[0], args[1])
	},
}

var moduleLayoutCmd = &cobra.Command{
	Use:   "layout [character]",
	Short: "Draw the sheet grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ModuleAdapter().Layout(cmd.Context(), args[0])
	},
}

var moduleTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List module types",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range models.ModuleTypes {
			p := layout.DefaultPlacement(t)
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s column %d, span %d, rows %d\n", t, p.Column+1, p.Span, p.RowSpan)
		}
	},
}

func moveCmd(dir layout.Direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(dir) + " [character] [module]",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ModuleAdapter().Move(cmd.Context(), args[0], args[1], dir)
		},
	}
}

func init() {
	// module add flags
	moduleAddCmd.Flags().String("title", "", "Module title")
	moduleAddCmd.Flags().String("system", "", "Module system (savage_pathfinder or generic, defaults to the character's)")
	moduleAddCmd.Flags().Int("column", 0, "Column 1-3 (default depends on the type)")
	moduleAddCmd.Flags().Int("span", 0, "Width in columns 1-3")
	moduleAddCmd.Flags().Int("rows", 0, "Height in rows 1-3")

	// module update flags
	moduleUpdateCmd.Flags().String("title", "", "New title")
	moduleUpdateCmd.Flags().String("notes", "", "Module notes")
	moduleUpdateCmd.Flags().String("system", "", "Module system")
	moduleUpdateCmd.Flags().String("text", "", "Text of a text_block module")
	moduleUpdateCmd.Flags().String("data", "", "Module data as JSON")
	moduleUpdateCmd.Flags().String("data-file", "", "Read module data JSON from a file")

	// Register subcommands
	moduleCmd.AddCommand(moduleAddCmd)
	moduleCmd.AddCommand(moduleUpdateCmd)
	moduleCmd.AddCommand(moduleRemoveCmd)
	moduleCmd.AddCommand(moveCmd(layout.Up, "Move a module earlier in the fill order"))
	moduleCmd.AddCommand(moveCmd(layout.Down, "Move a module later in the fill order"))
	moduleCmd.AddCommand(moveCmd(layout.Left, "Move a module one column left"))
	moduleCmd.AddCommand(moveCmd(layout.Right, "Move a module one column right"))
	moduleCmd.AddCommand(moduleSpanCmd)
	moduleCmd.AddCommand(moduleRowSpanCmd)
	moduleCmd.AddCommand(moduleLayoutCmd)
	moduleCmd.AddCommand(moduleTypesCmd)
}

// ModuleCmd returns the module command
func ModuleCmd() *cobra.Command {
	return moduleCmd
}
