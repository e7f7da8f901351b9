package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/example/rpgdash/internal/models"
	"github.com/example/rpgdash/internal/ports/primary"
)

// SessionAdapter translates session CLI operations to DataStore actions.
type SessionAdapter struct {
	store primary.DataStore
	out   io.Writer
}

// NewSessionAdapter creates a new SessionAdapter.
func NewSessionAdapter(store primary.DataStore, out io.Writer) *SessionAdapter {
	return &SessionAdapter{
		store: store,
		out:   out,
	}
}

// List prints scheduled sessions, newest first.
func (a *SessionAdapter) List(ctx context.Context) []models.Session {
	sessions := a.store.GetState().Sessions
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No sessions scheduled.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Schedule one:")
		fmt.Fprintln(a.out, "  rpgdash session add \"Sessão 2\" --at \"2026-11-01 19:30\"")
		return sessions
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tWHEN\tWHERE")
	fmt.Fprintln(w, "--\t-----\t----\t-----")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(s.ID),
			s.Title,
			formatWhen(s.ScheduledAtISO),
			orDash(s.Address),
		)
	}
	w.Flush()
	return sessions
}

// Add schedules a session and returns its id. when accepts the formats of
// ParseWhen.
func (a *SessionAdapter) Add(ctx context.Context, title, when string, input primary.SessionInput) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("session title must not be empty")
	}
	at, err := ParseWhen(when)
	if err != nil {
		return "", err
	}
	input.Title = title
	input.ScheduledAtISO = at

	id := a.store.AddSession(ctx, input)
	fmt.Fprintf(a.out, "✓ Scheduled %s for %s (%s)\n", strings.TrimSpace(title), formatWhen(at), shortID(id))
	return id, nil
}

// Remove deletes a session by id or unique id prefix.
func (a *SessionAdapter) Remove(ctx context.Context, ref string) error {
	var match []models.Session
	for _, s := range a.store.GetState().Sessions {
		if s.ID == ref {
			match = []models.Session{s}
			break
		}
		if ref != "" && strings.HasPrefix(s.ID, ref) {
			match = append(match, s)
		}
	}
	switch len(match) {
	case 0:
		return fmt.Errorf("session %q not found", ref)
	case 1:
	default:
		return fmt.Errorf("session %q is ambiguous, use its id", ref)
	}

	a.store.RemoveSession(ctx, match[0].ID)
	fmt.Fprintf(a.out, "✓ Removed session %s\n", match[0].Title)
	return nil
}
