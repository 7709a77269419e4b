package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func setupAuthRouter() (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var seen uuid.UUID
	router := gin.New()
	router.Use(Auth(testSecret))
	router.GET("/protected", func(c *gin.Context) {
		if userID, ok := c.Get("user_id"); ok {
			seen = userID.(uuid.UUID)
		}
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"user_id claim", jwt.MapClaims{"user_id": userID.String()}},
		{"sub claim fallback", jwt.MapClaims{"sub": userID.String()}},
		{"uid claim fallback", jwt.MapClaims{"uid": userID.String()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, seen := setupAuthRouter()
			tt.claims["exp"] = time.Now().Add(time.Hour).Unix()

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, tt.claims))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}
			if *seen != userID {
				t.Errorf("Expected user_id %s in context, got %s", userID, *seen)
			}
		})
	}
}

func TestAuth_Rejections(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{
			"wrong signing key",
			"Bearer " + signToken(t, "other-secret", jwt.MapClaims{"user_id": userID.String()}),
		},
		{
			"expired token",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"user_id": userID.String(),
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			"no user claim",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{"role": "admin"}),
		},
		{
			"user claim not a UUID",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{"user_id": "42"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupAuthRouter()

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", w.Code)
			}
		})
	}
}
