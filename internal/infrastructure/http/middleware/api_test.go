package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/infrastructure/config"
	"github.com/smartrecipe/server/internal/infrastructure/security"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func testAuthService() *security.AuthService {
	return security.NewAuthService(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret-key-for-testing-only-32-bytes",
			JWTExpiration:     time.Hour,
			RefreshExpiration: 24 * time.Hour,
		},
	}, zap.NewNop(), nil)
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Security()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	CORS()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/recipe/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestJSONOnly(t *testing.T) {
	handler := JSONOnly()(okHandler())

	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"json post", http.MethodPost, "application/json", http.StatusOK},
		{"json with charset", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"multipart upload", http.MethodPost, "multipart/form-data; boundary=x", http.StatusOK},
		{"form rejected", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"empty body allowed", http.MethodPost, "", http.StatusOK},
		{"get ignored", http.MethodGet, "text/html", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/api/recipe/", nil)
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthenticateAPI(t *testing.T) {
	auth := testAuthService()
	userID := uuid.New()
	pair, err := auth.GenerateTokenPair(userID, "chef_wang", true)
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotStaff bool
	handler := AuthenticateAPI(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		gotStaff = IsStaffFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/user/profile/", nil)
		r.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotID)
		assert.True(t, gotStaff)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/profile/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/user/profile/", nil)
		r.Header.Set("Authorization", pair.AccessToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/user/profile/", nil)
		r.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	auth := testAuthService()
	pair, err := auth.GenerateTokenPair(uuid.New(), "chef_wang", false)
	require.NoError(t, err)

	var authenticated bool
	handler := OptionalAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, authenticated = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipe/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, authenticated)

	r := httptest.NewRequest(http.MethodGet, "/api/recipe/", nil)
	r.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, authenticated)
}

func TestRequireStaff(t *testing.T) {
	auth := testAuthService()
	handler := AuthenticateAPI(auth)(RequireStaff()(okHandler()))

	staffPair, err := auth.GenerateTokenPair(uuid.New(), "admin", true)
	require.NoError(t, err)
	plainPair, err := auth.GenerateTokenPair(uuid.New(), "chef_wang", false)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/ingredient/manage/", nil)
	r.Header.Set("Authorization", "Bearer "+staffPair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)

	r = httptest.NewRequest(http.MethodPost, "/api/ingredient/manage/", nil)
	r.Header.Set("Authorization", "Bearer "+plainPair.AccessToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(config.RateLimitConfig{
		Enable:         true,
		RequestsPerMin: 60,
		BurstSize:      2,
	}, zap.NewNop())(okHandler())

	send := func(addr string) int {
		r := httptest.NewRequest(http.MethodGet, "/api/recipe/", nil)
		r.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}

func TestRateLimitDisabled(t *testing.T) {
	handler := RateLimit(config.RateLimitConfig{Enable: false, BurstSize: 1}, zap.NewNop())(okHandler())

	for range [5]int{} {
		r := httptest.NewRequest(http.MethodGet, "/api/recipe/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(r))
}
