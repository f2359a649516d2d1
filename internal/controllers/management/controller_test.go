package management

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hidromet/hidromet-server/pkg/config"
	"go.uber.org/zap"
)

func newTestController() *Controller {
	return &Controller{
		managementConfig: config.ManagementData{AuthToken: "test-token-123"},
		logger:           zap.NewNop().Sugar(),
	}
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := newTestController()

	reached := false
	protected := ctrl.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name       string
		authHeader string
		expectCode int
		expectPass bool
	}{
		{"valid token", "Bearer test-token-123", http.StatusOK, true},
		{"wrong token", "Bearer wrong-token", http.StatusUnauthorized, false},
		{"missing header", "", http.StatusUnauthorized, false},
		{"malformed header", "test-token-123", http.StatusUnauthorized, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached = false

			req := httptest.NewRequest("GET", "/api/status", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)

			if w.Code != tc.expectCode {
				t.Errorf("expected status %d, got %d", tc.expectCode, w.Code)
			}
			if reached != tc.expectPass {
				t.Errorf("expected handler reached=%v, got %v", tc.expectPass, reached)
			}
		})
	}
}

func TestCORSMiddlewareShortCircuitsOptions(t *testing.T) {
	ctrl := newTestController()

	wrapped := ctrl.corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("OPTIONS request should not reach the handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/api/config/stations", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for OPTIONS preflight, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected wildcard CORS origin, got %q", origin)
	}
}
