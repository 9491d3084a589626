package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solar-quote-backend/internal/delivery/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "diagnostics-secret"

func TestOperatorAuth(t *testing.T) {
	r := newEngine()
	r.GET("/email/test", middleware.OperatorAuth(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("Operator"))
	})

	call := func(authorization string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/email/test", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		r.ServeHTTP(w, req)
		return w
	}

	sign := func(secret string, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	t.Run("valid operator token", func(t *testing.T) {
		token, err := middleware.IssueOperatorToken(testSecret, "ops@theenergyplanet.com", time.Hour)
		require.NoError(t, err)

		w := call("Bearer " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ops@theenergyplanet.com", w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := call("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authorization header required", decode(t, w).Message)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := middleware.IssueOperatorToken("other-secret", "ops", time.Hour)
		require.NoError(t, err)

		w := call("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", decode(t, w).Message)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := middleware.IssueOperatorToken(testSecret, "ops", -time.Minute)
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+token).Code)
	})

	t.Run("no expiry", func(t *testing.T) {
		token := sign(testSecret, middleware.OperatorClaims{Role: middleware.RoleOperator})
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+token).Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		token := sign(testSecret, middleware.OperatorClaims{
			Role: "customer",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		w := call("Bearer " + token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Operator role required", decode(t, w).Message)
	})

	t.Run("empty secret cannot issue", func(t *testing.T) {
		_, err := middleware.IssueOperatorToken("", "ops", time.Hour)
		assert.Error(t, err)
	})
}
