package secondary

// Identity is an authenticated user.
type Identity struct {
	UserID string
	Email  string
}

// AuthState is a snapshot of the auth collaborator.
type AuthState struct {
	User       *Identity // nil when signed out
	Loading    bool      // the session is still being restored
	Configured bool      // remote sync is enabled in this deployment
}

// UserID returns the signed-in user id, or "" when signed out.
func (s AuthState) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.UserID
}

// AuthProvider exposes the current identity and notifies on changes.
type AuthProvider interface {
	// State returns the current auth snapshot.
	State() AuthState

	// Subscribe registers fn to be called with every new state and returns a
	// function that removes the subscription.
	Subscribe(fn func(AuthState)) (unsubscribe func())
}
