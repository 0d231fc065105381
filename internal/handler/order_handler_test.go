package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
	"github.com/Hamza287/brenvick-dashboard/internal/service"
	"github.com/Hamza287/brenvick-dashboard/pkg/storeapi"
)

// sessionStub plants a hydrated admin session into the context, standing in
// for the session middleware.
func sessionStub() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := &models.User{ID: 7, Role: models.RoleAdmin}
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Set("upstream_token", "upstream-token")
		c.Next()
	}
}

func TestUpdateStatusRejectsMissingField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	puts := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/orders/ord-1":
			fmt.Fprint(w, `{"success":true,"order":{"_id":"ord-1","status":2}}`)
		case r.Method == http.MethodPut && r.URL.Path == "/orders/ord-1":
			puts++
			fmt.Fprint(w, `{"success":true,"order":{"_id":"ord-1","status":0}}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	svc := service.NewOrderService(storeapi.NewClient(upstream.URL, 5*time.Second), nil, nil)
	h := NewOrderHandler(svc)

	r := gin.New()
	r.Use(sessionStub())
	r.PUT("/v1/orders/:id/status", h.UpdateStatus)

	// An empty object must not decode to Pending and reach the upstream.
	for _, body := range []string{`{}`, ``, `{"status":null}`} {
		req := httptest.NewRequest(http.MethodPut, "/v1/orders/ord-1/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), "INVALID_REQUEST") {
			t.Errorf("body %q: response = %s", body, w.Body.String())
		}
	}
	if puts != 0 {
		t.Fatalf("upstream received %d status updates for bodies without a status", puts)
	}

	// An explicit status, including Pending (0), still goes through.
	for _, body := range []string{`{"status":0}`, `{"status":4}`} {
		req := httptest.NewRequest(http.MethodPut, "/v1/orders/ord-1/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("body %q: status = %d, body %s", body, w.Code, w.Body.String())
		}
	}
	if puts != 2 {
		t.Fatalf("upstream received %d status updates, want 2", puts)
	}
}

func TestUpdateStatusRejectsUndefinedEnumValue(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("upstream called for an undefined status: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	svc := service.NewOrderService(storeapi.NewClient(upstream.URL, 5*time.Second), nil, nil)
	h := NewOrderHandler(svc)

	r := gin.New()
	r.Use(sessionStub())
	r.PUT("/v1/orders/:id/status", h.UpdateStatus)

	req := httptest.NewRequest(http.MethodPut, "/v1/orders/ord-1/status", strings.NewReader(`{"status":42}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_STATUS") {
		t.Errorf("response = %s", w.Body.String())
	}
}
