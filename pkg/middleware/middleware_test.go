package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAuthenticator is a mock implementation of Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (utils.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(utils.Principal), args.Error(1)
}

func principalEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := utils.GetPrincipalFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		fmt.Fprintf(w, "%d:%s", p.UserID, p.Role)
	})
}

func TestJWTAuth(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", mock.Anything, "good").
		Return(utils.Principal{UserID: 7, Email: "a@b.c", Role: utils.RoleUser}, nil)
	auth.On("Authenticate", mock.Anything, "expired").
		Return(utils.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthenticated))
	auth.On("Authenticate", mock.Anything, "broken").
		Return(utils.Principal{}, fmt.Errorf("database down"))

	handler := JWTAuth(auth, zap.NewNop())(principalEcho())

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "valid", header: "Bearer good", status: http.StatusOK, body: "7:ROLE_USER"},
		{name: "lowercase scheme", header: "bearer good", status: http.StatusOK, body: "7:ROLE_USER"},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "no token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer expired", status: http.StatusUnauthorized},
		{name: "backend failure", header: "Bearer broken", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	handler := Admin(zap.NewNop())(principalEcho())

	req := httptest.NewRequest(http.MethodPost, "/movie/addNew", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	userCtx := utils.SetUserContext(context.Background(), utils.Principal{UserID: 1, Role: utils.RoleUser})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(userCtx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminCtx := utils.SetUserContext(context.Background(), utils.Principal{UserID: 2, Role: utils.RoleAdmin})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(adminCtx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2:ROLE_ADMIN", rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	handler := RateLimit(limiter, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/user/getToken", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:5002"))

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, do("10.0.0.2:5000"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:5003"))
}

func TestRateLimiter_EvictsIdle(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.Allow("10.0.0.1"))
	now = now.Add(visitorIdle + time.Second)
	require.True(t, limiter.Allow("10.0.0.2"))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.visitors, 1)
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/movie/all", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}

func TestRecover(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"status":false`)
}
