package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/example/rpgdash/internal/config"
)

func subcommand(parent *cobra.Command, name string) *cobra.Command {
	for _, sub := range parent.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

// TestCommandTree verifies every subcommand is registered with a description.
func TestCommandTree(t *testing.T) {
	tree := map[*cobra.Command][]string{
		CampaignCmd():  {"show", "rename", "system"},
		NotesCmd():     {"show", "set"},
		CharacterCmd(): {"list", "add", "show", "update", "stats", "attributes", "remove"},
		ModuleCmd():    {"add", "update", "remove", "up", "down", "left", "right", "span", "rowspan", "layout", "types"},
		SessionCmd():   {"list", "add", "remove"},
		AuthCmd():      {"login", "logout", "status", "mint"},
		SyncCmd():      {"status", "push"},
		RefCmd():       {"add", "list", "get", "remove"},
	}
	for parent, names := range tree {
		for _, name := range names {
			sub := subcommand(parent, name)
			if sub == nil {
				t.Errorf("%s %s not registered", parent.Name(), name)
				continue
			}
			if sub.Short == "" {
				t.Errorf("%s %s should have a Short description", parent.Name(), name)
			}
		}
	}
}

func TestModuleMoveArgs(t *testing.T) {
	up := subcommand(ModuleCmd(), "up")
	if up == nil {
		t.Fatal("module up not registered")
	}
	if err := up.Args(up, []string{"artheon"}); err == nil {
		t.Error("expected error with a single argument")
	}
	if err := up.Args(up, []string{"artheon", "2"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSessionAddRequiresAt(t *testing.T) {
	add := subcommand(SessionCmd(), "add")
	if add == nil {
		t.Fatal("session add not registered")
	}
	at := add.Flags().Lookup("at")
	if at == nil {
		t.Fatal("--at flag missing")
	}
	if _, ok := at.Annotations[cobra.BashCompOneRequiredFlag]; !ok {
		t.Error("--at should be required")
	}
}

func TestCheckDataDir(t *testing.T) {
	dir := t.TempDir()
	if r := checkDataDir(dir); r.Status != "✓" {
		t.Errorf("existing dir: got %s %s", r.Status, r.Details)
	}
	if r := checkDataDir(filepath.Join(dir, "missing")); r.Status != "⚠" {
		t.Errorf("missing dir: got %s", r.Status)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := checkDataDir(file); r.Status != "✗" {
		t.Errorf("file: got %s", r.Status)
	}
}

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()

	r, cfg := checkConfig(dir, "")
	if r.Status != "⚠" || cfg == nil {
		t.Errorf("defaults: got %s, cfg %v", r.Status, cfg)
	}

	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("local:\n  backend: floppy\n"), 0600); err != nil {
		t.Fatal(err)
	}
	r, cfg = checkConfig(dir, "")
	if r.Status != "✗" || cfg != nil {
		t.Errorf("invalid backend: got %s", r.Status)
	}
}

func TestCheckSync(t *testing.T) {
	cfg := config.Default(t.TempDir())
	if r := checkSync(cfg); r.Status != "⚠" {
		t.Errorf("no remote: got %s", r.Status)
	}

	cfg.Remote.Backend = config.RemoteSQLite
	if r := checkSync(cfg); r.Status != "✗" {
		t.Errorf("remote without secret: got %s", r.Status)
	}

	cfg.Auth.Secret = "s3cret"
	if r := checkSync(cfg); r.Status != "✓" {
		t.Errorf("configured: got %s %s", r.Status, r.Details)
	}
}

func TestCheckDatabase(t *testing.T) {
	cfg := config.Default(t.TempDir())
	if r := checkDatabase(cfg); r.Status != "⚠" {
		t.Errorf("missing db: got %s", r.Status)
	}
}
