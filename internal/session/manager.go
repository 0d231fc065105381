package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
	"github.com/Hamza287/brenvick-dashboard/internal/utils"
)

// Authenticator is the upstream login call the Manager delegates to.
// It returns the authenticated user and the bearer token the storefront
// issued for them.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (*models.User, string, error)
}

// Manager owns the admin session lifecycle: login against the upstream,
// hydration on each request, logout, and expiry. The client-held credential
// is "<id>.<secret>"; only the bcrypt hash of the secret is stored.
type Manager struct {
	store       Store
	auth        Authenticator
	fallbackTTL time.Duration
}

// NewManager constructs a Manager.
func NewManager(store Store, auth Authenticator, fallbackTTL time.Duration) *Manager {
	return &Manager{store: store, auth: auth, fallbackTTL: fallbackTTL}
}

// Login authenticates against the storefront and creates a session. A valid
// identity whose role is not admin is rejected: this is the admin console's
// login flow, not the storefront's.
func (m *Manager) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	user, token, err := m.auth.Login(ctx, identifier, password)
	if err != nil {
		log.Warn().Err(err).Str("identifier", identifier).Msg("Upstream login failed")
		return "", nil, utils.ErrInvalidCredentials
	}
	if !user.IsAdmin() {
		log.Warn().Str("identifier", identifier).Str("role", user.Role).Msg("Non-admin login attempt")
		return "", nil, utils.ErrAccessDenied
	}

	expiresAt := time.Now().Add(m.fallbackTTL)
	if claims, err := ParseToken(token); err == nil && !claims.ExpiresAt.IsZero() {
		expiresAt = claims.ExpiresAt
	}

	secret, err := utils.GenerateSessionSecret()
	if err != nil {
		return "", nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return "", nil, err
	}

	sess := &models.Session{
		ID:         uuid.New().String(),
		SecretHash: string(hash),
		UserID:     user.ID,
		Role:       user.Role,
		Token:      token,
		UserJSON:   userJSON,
		ExpiresAt:  expiresAt,
	}
	if err := m.store.Create(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().Int("user_id", user.ID).Str("session_id", sess.ID).Msg("Admin session created")
	return sess.ID + "." + secret, user, nil
}

// Hydrate resolves a client credential into a live session. An expired
// session is deleted before the expiry error is returned, so a stale
// credential can never authenticate again.
func (m *Manager) Hydrate(ctx context.Context, credential string) (*models.Session, *models.User, error) {
	id, secret, ok := strings.Cut(credential, ".")
	if !ok || id == "" || secret == "" {
		return nil, nil, utils.ErrUnauthorized
	}

	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, utils.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(sess.SecretHash), []byte(secret)); err != nil {
		return nil, nil, utils.ErrUnauthorized
	}
	if sess.Expired(time.Now()) {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			log.Error().Err(err).Str("session_id", sess.ID).Msg("Failed to delete expired session")
		}
		return nil, nil, utils.ErrSessionExpired
	}

	var user models.User
	if err := json.Unmarshal(sess.UserJSON, &user); err != nil {
		return nil, nil, fmt.Errorf("corrupt session user record: %w", err)
	}
	return sess, &user, nil
}

// Logout deletes the session behind a credential. Unknown or malformed
// credentials are a no-op: logout is idempotent.
func (m *Manager) Logout(ctx context.Context, credential string) error {
	id, _, ok := strings.Cut(credential, ".")
	if !ok || id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}
