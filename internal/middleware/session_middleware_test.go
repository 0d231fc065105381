package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
	"github.com/Hamza287/brenvick-dashboard/internal/session"
	"github.com/Hamza287/brenvick-dashboard/internal/utils"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	// delay simulates a slow backing store.
	delay time.Duration
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]*models.Session{}}
}

func (s *memStore) Create(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	cp.CreatedAt = time.Now()
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*models.Session, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

type fakeAuth struct {
	user  *models.User
	token string
}

func (a *fakeAuth) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	return a.user, a.token, nil
}

func setupRouter(t *testing.T, store session.Store, roles ...string) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := session.NewManager(store, &fakeAuth{}, time.Hour)
	handled := 0

	r := gin.New()
	group := r.Group("/v1")
	group.Use(NewSessionMiddleware(manager).Handle())
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("/probe", func(c *gin.Context) {
		handled++
		utils.Success(c, 200, "ok", gin.H{"userId": c.GetInt("user_id")})
	})
	return r, &handled
}

func loginCredential(t *testing.T, store session.Store, role string) string {
	t.Helper()
	auth := &fakeAuth{
		user:  &models.User{ID: 7, Name: "Ops Admin", Email: "ops@brenvick.test", Role: role},
		token: "upstream-token",
	}
	manager := session.NewManager(store, auth, time.Hour)
	cred, _, err := manager.Login(context.Background(), "ops@brenvick.test", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return cred
}

func TestSessionMiddlewareRejectsMissingHeader(t *testing.T) {
	r, handled := setupRouter(t, newMemStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/probe", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
	if *handled != 0 {
		t.Error("handler ran without a session")
	}
}

func TestSessionMiddlewareHydratesUser(t *testing.T) {
	store := newMemStore()
	cred := loginCredential(t, store, models.RoleAdmin)
	r, handled := setupRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer "+cred)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if *handled != 1 {
		t.Errorf("handled = %d", *handled)
	}
	if !strings.Contains(w.Body.String(), `"userId":7`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRoleGateBlocksNonAdmin(t *testing.T) {
	store := newMemStore()
	cred := loginCredential(t, store, models.RoleAdmin)

	// Downgrade the stored role to simulate a role change after login.
	for _, sess := range store.sessions {
		sess.Role = models.RoleUser
		data, _ := json.Marshal(models.User{ID: 7, Role: models.RoleUser})
		sess.UserJSON = data
	}

	r, handled := setupRouter(t, store, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer "+cred)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d", w.Code)
	}
	if *handled != 0 {
		t.Error("handler ran for a forbidden role")
	}
	if !strings.Contains(w.Body.String(), "ROLE_FORBIDDEN") {
		t.Errorf("body = %s", w.Body.String())
	}
}

// A slow store must not let the handler run early: hydration completes
// before anything below the middleware executes.
func TestRoleGateHoldsDuringSlowHydration(t *testing.T) {
	store := newMemStore()
	cred := loginCredential(t, store, models.RoleAdmin)
	store.delay = 50 * time.Millisecond

	r, handled := setupRouter(t, store, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer "+cred)
	start := time.Now()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if elapsed := time.Since(start); elapsed < store.delay {
		t.Errorf("request finished in %v, before hydration could complete", elapsed)
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if *handled != 1 {
		t.Errorf("handled = %d", *handled)
	}
}

func TestExpiredSessionGets401(t *testing.T) {
	store := newMemStore()
	cred := loginCredential(t, store, models.RoleAdmin)
	for _, sess := range store.sessions {
		sess.ExpiresAt = time.Now().Add(-time.Minute)
	}

	r, handled := setupRouter(t, store, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	req.Header.Set("Authorization", "Bearer "+cred)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SESSION_EXPIRED") {
		t.Errorf("body = %s", w.Body.String())
	}
	if *handled != 0 {
		t.Error("handler ran with an expired session")
	}
	if len(store.sessions) != 0 {
		t.Error("expired session row not cleared")
	}
}
