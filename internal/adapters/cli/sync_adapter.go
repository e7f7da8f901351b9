package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/example/rpgdash/internal/ports/primary"
	"github.com/example/rpgdash/internal/ports/secondary"
)

// SessionManager is the sign-in side of the auth collaborator.
type SessionManager interface {
	State() secondary.AuthState
	SignIn(ctx context.Context, token string) (*secondary.Identity, error)
	SignOut(ctx context.Context) error
	Mint(userID, email string, ttl time.Duration) (string, error)
}

// RemoteInspector is implemented by remote stores that can report when a
// user's document was last written.
type RemoteInspector interface {
	UpdatedAt(ctx context.Context, userID string) (time.Time, error)
}

// SyncAdapter reports and drives remote sync for the CLI.
type SyncAdapter struct {
	store    primary.DataStore
	sessions SessionManager
	remote   RemoteInspector // nil when the remote cannot be inspected
	out      io.Writer
}

// NewSyncAdapter creates a new SyncAdapter. remote may be nil.
func NewSyncAdapter(store primary.DataStore, sessions SessionManager, remote RemoteInspector, out io.Writer) *SyncAdapter {
	return &SyncAdapter{
		store:    store,
		sessions: sessions,
		remote:   remote,
		out:      out,
	}
}

// Login signs in with a session token and waits for the first reconciliation.
func (a *SyncAdapter) Login(ctx context.Context, token string) error {
	identity, err := a.sessions.SignIn(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}
	if err := a.store.AwaitReconciled(ctx); err != nil {
		return fmt.Errorf("failed to wait for sync: %w", err)
	}

	who := identity.UserID
	if identity.Email != "" {
		who = fmt.Sprintf("%s (%s)", identity.Email, identity.UserID)
	}
	fmt.Fprintf(a.out, "✓ Signed in as %s\n", who)
	a.printSync(a.store.Status())
	return nil
}

// Logout clears the session. The local document is kept.
func (a *SyncAdapter) Logout(ctx context.Context) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✓ Signed out, changes stay on this device")
	return nil
}

// Mint prints a new session token.
func (a *SyncAdapter) Mint(userID, email string, ttl time.Duration) (string, error) {
	token, err := a.sessions.Mint(userID, email, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to mint token: %w", err)
	}
	fmt.Fprintln(a.out, token)
	return token, nil
}

// AuthStatus prints the signed-in identity.
func (a *SyncAdapter) AuthStatus(ctx context.Context) secondary.AuthState {
	state := a.sessions.State()
	switch {
	case !state.Configured:
		fmt.Fprintf(a.out, "Auth:   %s\n", caution.Sprint("not configured"))
	case state.User == nil:
		fmt.Fprintf(a.out, "Auth:   %s\n", faint.Sprint("signed out"))
	default:
		fmt.Fprintf(a.out, "Auth:   %s\n", ok.Sprint("signed in"))
		fmt.Fprintf(a.out, "User:   %s\n", state.User.UserID)
		if state.User.Email != "" {
			fmt.Fprintf(a.out, "Email:  %s\n", state.User.Email)
		}
	}
	return state
}

// Status waits for reconciliation and prints the sync state.
func (a *SyncAdapter) Status(ctx context.Context) (primary.SyncStatus, error) {
	if err := a.store.AwaitReconciled(ctx); err != nil {
		return primary.SyncStatus{}, fmt.Errorf("failed to wait for sync: %w", err)
	}
	a.AuthStatus(ctx)
	status := a.store.Status()
	a.printSync(status)

	if a.remote != nil && status.State == primary.SyncMirrored {
		at, err := a.remote.UpdatedAt(ctx, status.UserID)
		switch {
		case errors.Is(err, secondary.ErrNotFound):
			fmt.Fprintf(a.out, "Remote: %s\n", faint.Sprint("no copy yet"))
		case err != nil:
			fmt.Fprintf(a.out, "Remote: %s\n", failed.Sprint(err.Error()))
		default:
			fmt.Fprintf(a.out, "Remote: updated %s\n", at.Local().Format(time.RFC1123))
		}
	}
	return status, nil
}

// Push writes the current document to the remote now.
func (a *SyncAdapter) Push(ctx context.Context) error {
	if err := a.store.AwaitReconciled(ctx); err != nil {
		return fmt.Errorf("failed to wait for sync: %w", err)
	}
	if err := a.store.Push(ctx); err != nil {
		if errors.Is(err, primary.ErrNotMirrored) {
			return fmt.Errorf("remote sync is not active, sign in with 'rpgdash auth login' first")
		}
		return err
	}
	fmt.Fprintln(a.out, "✓ Document pushed to remote")
	return nil
}

func (a *SyncAdapter) printSync(status primary.SyncStatus) {
	var state string
	switch status.State {
	case primary.SyncMirrored:
		state = ok.Sprint(string(status.State))
	case primary.SyncReconciling:
		state = caution.Sprint(string(status.State))
	default:
		state = faint.Sprint(string(status.State))
	}
	fmt.Fprintf(a.out, "Sync:   %s\n", state)
	if status.Err != "" {
		fmt.Fprintf(a.out, "Error:  %s\n", failed.Sprint(status.Err))
	}
}
