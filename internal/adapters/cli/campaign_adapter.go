package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/rpgdash/internal/ports/primary"
)

// CampaignAdapter translates campaign-level CLI operations to DataStore actions.
type CampaignAdapter struct {
	store primary.DataStore
	out   io.Writer
}

// NewCampaignAdapter creates a new CampaignAdapter.
func NewCampaignAdapter(store primary.DataStore, out io.Writer) *CampaignAdapter {
	return &CampaignAdapter{
		store: store,
		out:   out,
	}
}

// Show prints the campaign summary.
func (a *CampaignAdapter) Show(ctx context.Context) {
	doc := a.store.GetState()

	fmt.Fprintf(a.out, "\n%s\n", bold.Sprint(doc.Campaign.Name))
	fmt.Fprintf(a.out, "System:     %s\n", orDash(doc.Campaign.System))
	fmt.Fprintf(a.out, "Created:    %s\n", formatWhen(doc.Campaign.CreatedAtISO))
	fmt.Fprintf(a.out, "Characters: %d\n", len(doc.Characters))
	fmt.Fprintf(a.out, "Sessions:   %d\n", len(doc.Sessions))
	if len(doc.Sessions) > 0 {
		next := doc.Sessions[0]
		fmt.Fprintf(a.out, "Latest:     %s (%s)\n", next.Title, formatWhen(next.ScheduledAtISO))
	}
	fmt.Fprintln(a.out)
}

// Rename sets the campaign name.
func (a *CampaignAdapter) Rename(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("campaign name must not be empty")
	}
	a.store.SetCampaignName(ctx, name)
	fmt.Fprintf(a.out, "✓ Campaign renamed to %s\n", name)
	return nil
}

// SetSystem sets the campaign's game system label.
func (a *CampaignAdapter) SetSystem(ctx context.Context, system string) {
	system = strings.TrimSpace(system)
	a.store.SetCampaignSystem(ctx, system)
	fmt.Fprintf(a.out, "✓ Campaign system set to %s\n", orDash(system))
}

// ShowNotes prints the campaign notes.
func (a *CampaignAdapter) ShowNotes(ctx context.Context) {
	notes := a.store.GetState().Notes.Campaign
	if strings.TrimSpace(notes) == "" {
		fmt.Fprintln(a.out, faint.Sprint("No campaign notes yet."))
		return
	}
	fmt.Fprintln(a.out, notes)
}

// SetNotes replaces the campaign notes.
func (a *CampaignAdapter) SetNotes(ctx context.Context, notes string) {
	a.store.SetCampaignNotes(ctx, notes)
	fmt.Fprintln(a.out, "✓ Campaign notes saved")
}

// Reset replaces the whole document with fresh sample data.
func (a *CampaignAdapter) Reset(ctx context.Context) {
	a.store.ResetToSeed(ctx)
	fmt.Fprintf(a.out, "✓ Dashboard reset to sample campaign %s\n", a.store.GetState().Campaign.Name)
}
