package middleware

import (
	"errors"
	"strings"
	"time"

	"solar-quote-backend/pkg/apperror"
	"solar-quote-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RoleOperator is the only role admitted to the diagnostics routes.
const RoleOperator = "operator"

// OperatorClaims are the claims of a diagnostics bearer token.
type OperatorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueOperatorToken signs an HS256 operator token valid for ttl.
func IssueOperatorToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("operator token secret is empty")
	}
	now := time.Now()
	claims := OperatorClaims{
		Role: RoleOperator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// OperatorAuth admits requests bearing a valid HS256 token with role=operator.
func OperatorAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || tokenString == "" {
			_ = c.Error(apperror.Unauthorized("Authorization header required"))
			c.Abort()
			return
		}

		claims := &OperatorClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil {
			logger.Log.WarnContext(c.Request.Context(), "Operator token rejected",
				"error", err.Error(),
				"client_ip", c.ClientIP(),
			)
			_ = c.Error(apperror.Unauthorized("Invalid token"))
			c.Abort()
			return
		}

		if claims.Role != RoleOperator {
			_ = c.Error(apperror.Forbidden("Operator role required"))
			c.Abort()
			return
		}

		c.Set("Operator", claims.Subject)
		c.Next()
	}
}
