package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubTokenService accepts "good-<role>" tokens.
type stubTokenService struct {
	userID uuid.UUID
}

func (s stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	switch token {
	case "good-landlord":
		return &adapter.TokenClaims{UserID: s.userID, Role: adapter.RoleLandlord}, nil
	case "good-tenant":
		return &adapter.TokenClaims{UserID: s.userID, Role: "TENANT"}, nil
	case "expired":
		return nil, domainerror.ErrExpiredToken
	default:
		return nil, domainerror.ErrInvalidToken
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	auth := NewAuthMiddleware(stubTokenService{userID: userID})

	engine := gin.New()
	engine.GET("/protected",
		auth.Authenticate(),
		auth.RequireRole(adapter.RoleLandlord, adapter.RoleAdmin),
		func(c *gin.Context) {
			id, ok := GetUserIDFromContext(c)
			require.True(t, ok)
			c.String(http.StatusOK, id.String())
		},
	)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"missing header", "", http.StatusUnauthorized, string(domainerror.ErrCodeMissingToken)},
		{"not bearer", "Basic abc", http.StatusUnauthorized, string(domainerror.ErrCodeInvalidToken)},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, string(domainerror.ErrCodeMissingToken)},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, string(domainerror.ErrCodeInvalidToken)},
		{"expired token", "Bearer expired", http.StatusUnauthorized, string(domainerror.ErrCodeExpiredToken)},
		{"tenant role", "Bearer good-tenant", http.StatusForbidden, string(domainerror.ErrCodeForbidden)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}

	t.Run("landlord passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-landlord")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	})
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2, time.Minute)
	limiter.now = func() time.Time { return now }

	engine := gin.New()
	engine.POST("/settle", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/settle", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	w := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeRateLimited), errorCode(t, w))

	// Other clients have their own window.
	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)

	now = now.Add(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(0, time.Minute)

	engine := gin.New()
	engine.POST("/settle", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/settle", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_PrunesExpiredClients(t *testing.T) {
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, time.Minute)
	limiter.now = func() time.Time { return now }

	for i := 0; i < maxTrackedClients; i++ {
		limiter.allow(uuid.NewString())
	}
	require.Len(t, limiter.entries, maxTrackedClients)

	now = now.Add(2 * time.Minute)
	assert.True(t, limiter.allow("fresh"))
	assert.Len(t, limiter.entries, 1)
}
