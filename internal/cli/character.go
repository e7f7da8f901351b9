package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/rpgdash/internal/adapters/cli"
	"github.com/example/rpgdash/internal/core/ruleset"
	"github.com/example/rpgdash/internal/ports/primary"
	"github.com/example/rpgdash/internal/wire"
)

var characterCmd = &cobra.Command{
	Use:     "character",
	Aliases: []string{"char"},
	Short:   "Manage characters",
	Long:    "Create, list, and edit the characters of the campaign. A character can be referenced by id, id prefix or name.",
}

var characterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List characters",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wire.CharacterAdapter().List(cmd.Context())
	},
}

var characterAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a character",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := cliadapter.AddCharacterRequest{Name: strings.Join(args, " ")}
		req.PlayerName, _ = cmd.Flags().GetString("player")
		req.System, _ = cmd.Flags().GetString("system")
		req.Class, _ = cmd.Flags().GetString("class")
		req.Race, _ = cmd.Flags().GetString("race")
		req.Level, _ = cmd.Flags().GetString("level")

		_, err := wire.CharacterAdapter().Add(cmd.Context(), req)
		return err
	},
}

var characterShowCmd = &cobra.Command{
	Use:   "show [character]",
	Short: "Show a character sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CharacterAdapter().Show(cmd.Context(), args[0])
		return err
	},
}

var characterUpdateCmd = &cobra.Command{
	Use:   "update [character]",
	Short: "Update character details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter := wire.CharacterAdapter()
		patch := primary.CharacterPatch{
			Name:       optString(cmd, "name"),
			System:     optString(cmd, "system"),
			PlayerName: optString(cmd, "player"),
			Class:      optString(cmd, "class"),
			Race:       optString(cmd, "race"),
			AvatarURL:  optString(cmd, "avatar"),
			Background: optString(cmd, "background"),
		}
		if level := optString(cmd, "level"); level != nil {
			var err error
			if patch.System != nil {
				patch.Level, err = ruleset.ParseLevel(*patch.System, *level)
			} else {
				patch.Level, err = adapter.ParseLevelFor(args[0], *level)
			}
			if err != nil {
				return err
			}
			if patch.Level == nil {
				return fmt.Errorf("--level must not be empty")
			}
		}
		return adapter.Update(cmd.Context(), args[0], patch)
	},
}

var characterStatsCmd = &cobra.Command{
	Use:   "stats [character]",
	Short: "Change combat stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CharacterAdapter().Stats(cmd.Context(), args[0], cliadapter.StatsChange{
			CA:            optInt(cmd, "ca"),
			HP:            optInt(cmd, "hp"),
			HPMax:         optInt(cmd, "hp-max"),
			Initiative:    optInt(cmd, "initiative"),
			Pace:          optInt(cmd, "pace"),
			Parry:         optInt(cmd, "parry"),
			Toughness:     optInt(cmd, "toughness"),
			Wounds:        optInt(cmd, "wounds"),
			Fatigue:       optInt(cmd, "fatigue"),
			Incapacitated: optBool(cmd, "incapacitated"),
		})
	},
}

var characterAttributesCmd = &cobra.Command{
	Use:     "attributes [character]",
	Aliases: []string{"attrs"},
	Short:   "Change attribute dice (4, 6, 8, 10 or 12)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CharacterAdapter().Attributes(cmd.Context(), args[0], cliadapter.AttributesChange{
			Agility:  optInt(cmd, "agility"),
			Smarts:   optInt(cmd, "smarts"),
			Spirit:   optInt(cmd, "spirit"),
			Strength: optInt(cmd, "strength"),
			Vigor:    optInt(cmd, "vigor"),
		})
	},
}

var characterRemoveCmd = &cobra.Command{
	Use:     "remove [character]",
	Aliases: []string{"rm"},
	Short:   "Remove a character and its sheet",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CharacterAdapter().Remove(cmd.Context(), args[0])
	},
}

func init() {
	// character add flags
	characterAddCmd.Flags().StringP("player", "p", "", "Player name")
	characterAddCmd.Flags().StringP("system", "s", ruleset.SavagePathfinder, "Game system")
	characterAddCmd.Flags().String("class", "", "Class")
	characterAddCmd.Flags().String("race", "", "Race or ancestry")
	characterAddCmd.Flags().String("level", "", "Level or rank (defaults to the system's starting level)")

	// character update flags
	characterUpdateCmd.Flags().String("name", "", "New name")
	characterUpdateCmd.Flags().StringP("player", "p", "", "Player name")
	characterUpdateCmd.Flags().StringP("system", "s", "", "Game system")
	characterUpdateCmd.Flags().String("class", "", "Class")
	characterUpdateCmd.Flags().String("race", "", "Race or ancestry")
	characterUpdateCmd.Flags().String("level", "", "Level or rank")
	characterUpdateCmd.Flags().String("avatar", "", "Avatar image URL")
	characterUpdateCmd.Flags().String("background", "", "Background text")

	// character stats flags
	characterStatsCmd.Flags().Int("ca", 0, "Armor class")
	characterStatsCmd.Flags().Int("hp", 0, "Current hit points")
	characterStatsCmd.Flags().Int("hp-max", 0, "Maximum hit points")
	characterStatsCmd.Flags().Int("initiative", 0, "Initiative modifier")
	characterStatsCmd.Flags().Int("pace", 0, "Pace")
	characterStatsCmd.Flags().Int("parry", 0, "Parry")
	characterStatsCmd.Flags().Int("toughness", 0, "Toughness")
	characterStatsCmd.Flags().Int("wounds", 0, "Wounds")
	characterStatsCmd.Flags().Int("fatigue", 0, "Fatigue")
	characterStatsCmd.Flags().Bool("incapacitated", false, "Incapacitated")

	// character attributes flags
	for _, attr := range []string{"agility", "smarts", "spirit", "strength", "vigor"} {
		characterAttributesCmd.Flags().Int(attr, 0, fmt.Sprintf("%s die", strings.ToUpper(attr[:1])+attr[1:]))
	}

	// Register subcommands
	characterCmd.AddCommand(characterListCmd)
	characterCmd.AddCommand(characterAddCmd)
	characterCmd.AddCommand(characterShowCmd)
	characterCmd.AddCommand(characterUpdateCmd)
	characterCmd.AddCommand(characterStatsCmd)
	characterCmd.AddCommand(characterAttributesCmd)
	characterCmd.AddCommand(characterRemoveCmd)
}

// CharacterCmd returns the character command
func CharacterCmd() *cobra.Command {
	return characterCmd
}
