package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/rpgdash/internal/config"
	"github.com/example/rpgdash/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the rpgdash data directory and configuration",
		Long: `Health check for the local installation.

Validates:
- Data directory is present and writable
- config.yaml parses and is consistent
- Local database schema is current
- Sync settings (remote backend and token secret)

Examples:
  rpgdash doctor              # Run full health check
  rpgdash doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataFlag, _ := cmd.Flags().GetString("data-dir")
			configFlag, _ := cmd.Flags().GetString("config")

			dataDir, err := config.ResolveDataDir(dataFlag)
			if err != nil {
				return err
			}

			results := []CheckResult{checkDataDir(dataDir)}
			cfgResult, cfg := checkConfig(dataDir, configFlag)
			results = append(results, cfgResult)
			if cfg != nil {
				results = append(results, checkDatabase(cfg), checkSync(cfg))
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Check              Status")
				fmt.Fprintln(out, "─────────────────────────")
				for _, r := range results {
					fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
				}
				fmt.Fprintln(out)

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Fprintln(out, "Details:")
							hasDetails = true
						}
						fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Fprintln(out, "\n⚠ Issues found.")
				} else {
					fmt.Fprintln(out, "All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func checkDataDir(dataDir string) CheckResult {
	info, err := os.Stat(dataDir)
	if os.IsNotExist(err) {
		return CheckResult{Name: "Data directory", Status: "⚠", Details: fmt.Sprintf("  %s does not exist yet, it is created on first write", dataDir)}
	}
	if err != nil {
		return CheckResult{Name: "Data directory", Status: "✗", Details: "  " + err.Error()}
	}
	if !info.IsDir() {
		return CheckResult{Name: "Data directory", Status: "✗", Details: fmt.Sprintf("  %s is not a directory", dataDir)}
	}

	probe, err := os.CreateTemp(dataDir, ".doctor-*")
	if err != nil {
		return CheckResult{Name: "Data directory", Status: "✗", Details: fmt.Sprintf("  %s is not writable: %v", dataDir, err)}
	}
	probe.Close()
	os.Remove(probe.Name())
	return CheckResult{Name: "Data directory", Status: "✓"}
}

func checkConfig(dataDir, path string) (CheckResult, *config.Config) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadConfigFile(dataDir, path)
	} else {
		cfg, err = config.LoadConfig(dataDir)
	}
	if err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}, nil
	}
	if path == "" {
		if _, statErr := os.Stat(filepath.Join(dataDir, config.FileName)); os.IsNotExist(statErr) {
			return CheckResult{Name: "Config", Status: "⚠", Details: "  No config.yaml, using defaults"}, cfg
		}
	}
	return CheckResult{Name: "Config", Status: "✓"}, cfg
}

func checkDatabase(cfg *config.Config) CheckResult {
	path := db.DefaultPath(cfg.DataDir)
	if cfg.Local.Backend == config.LocalSQLite {
		path = cfg.LocalPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{Name: "Database", Status: "⚠", Details: fmt.Sprintf("  %s not created yet", path)}
	}

	database, err := db.Open(path)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	defer database.Close()

	current, err := db.CurrentVersion(database)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	if current != db.LatestVersion() {
		return CheckResult{Name: "Database", Status: "✗", Details: fmt.Sprintf("  Schema version %d, expected %d", current, db.LatestVersion())}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

func checkSync(cfg *config.Config) CheckResult {
	switch {
	case cfg.Remote.Backend == config.RemoteNone:
		return CheckResult{Name: "Sync", Status: "⚠", Details: "  No remote backend configured, the dashboard stays on this device"}
	case !cfg.AuthConfigured():
		return CheckResult{Name: "Sync", Status: "✗", Details: "  Remote backend set but auth.secret is empty, sign-in is impossible"}
	}
	return CheckResult{Name: "Sync", Status: "✓"}
}
