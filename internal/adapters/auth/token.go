// Package auth provides the identity collaborator: HMAC-signed session
// tokens persisted in a local slot.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/rpgdash/internal/ports/secondary"
)

// SessionKey is the slot holding the current session token.
const SessionKey = "rpg-dashboard:session"

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid session token")

// ErrNotConfigured is returned when no signing secret is configured.
var ErrNotConfigured = errors.New("auth is not configured")

// Config holds the token signing settings.
type Config struct {
	Secret []byte
	Issuer string
	Now    func() time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenProvider implements secondary.AuthProvider. It starts in the loading
// state until Restore runs.
type TokenProvider struct {
	slots  secondary.SlotStore
	cfg    Config
	logger *zap.Logger

	mu     sync.Mutex
	state  secondary.AuthState
	subs   map[int]func(secondary.AuthState)
	nextID int
}

// Ensure TokenProvider implements the interface
var _ secondary.AuthProvider = (*TokenProvider)(nil)

// NewTokenProvider creates a provider whose session lives in slots.
func NewTokenProvider(slots secondary.SlotStore, cfg Config, logger *zap.Logger) *TokenProvider {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenProvider{
		slots:  slots,
		cfg:    cfg,
		logger: logger,
		state:  secondary.AuthState{Loading: true, Configured: len(cfg.Secret) > 0},
		subs:   make(map[int]func(secondary.AuthState)),
	}
}

// State returns the current auth snapshot.
func (p *TokenProvider) State() secondary.AuthState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers fn for every state change.
func (p *TokenProvider) Subscribe(fn func(secondary.AuthState)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Restore loads the persisted session. A missing, expired or invalid token
// leaves the provider signed out.
func (p *TokenProvider) Restore(ctx context.Context) error {
	token, ok, err := p.slots.Get(ctx, SessionKey)
	if err != nil {
		p.publish(nil)
		return fmt.Errorf("failed to read session: %w", err)
	}
	if !ok || token == "" || len(p.cfg.Secret) == 0 {
		p.publish(nil)
		return nil
	}
	identity, err := p.Verify(token)
	if err != nil {
		p.logger.Info("discarding stored session", zap.Error(err))
		p.publish(nil)
		return nil
	}
	p.publish(identity)
	return nil
}

// SignIn verifies token, persists it and publishes the identity.
func (p *TokenProvider) SignIn(ctx context.Context, token string) (*secondary.Identity, error) {
	identity, err := p.Verify(token)
	if err != nil {
		return nil, err
	}
	if err := p.slots.Set(ctx, SessionKey, strings.TrimSpace(token)); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	p.publish(identity)
	return identity, nil
}

// SignOut clears the persisted session.
func (p *TokenProvider) SignOut(ctx context.Context) error {
	if err := p.slots.Set(ctx, SessionKey, ""); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	p.publish(nil)
	return nil
}

// Mint issues a session token for userID valid for ttl.
func (p *TokenProvider) Mint(userID, email string, ttl time.Duration) (string, error) {
	if len(p.cfg.Secret) == 0 {
		return "", ErrNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	now := p.cfg.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.cfg.Issuer,
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature, issuer and expiry.
func (p *TokenProvider) Verify(token string) (*secondary.Identity, error) {
	if len(p.cfg.Secret) == 0 {
		return nil, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.cfg.Now),
		jwt.WithExpirationRequired(),
	}
	if p.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.cfg.Issuer))
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return p.cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, mapJWTError(err)
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidToken)
	}
	return &secondary.Identity{UserID: parsed.Subject, Email: parsed.Email}, nil
}

func (p *TokenProvider) publish(identity *secondary.Identity) {
	p.mu.Lock()
	p.state = secondary.AuthState{User: identity, Configured: len(p.cfg.Secret) > 0}
	state := p.state
	subs := make([]func(secondary.AuthState), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// mapJWTError translates jwt library errors to ErrInvalidToken.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: token is expired", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: signature is invalid", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: alg is invalid", ErrInvalidToken)
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}
