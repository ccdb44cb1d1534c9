package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
)

// ClaimsContextKey is a gin context key for the authenticated session claims.
const ClaimsContextKey = "sessionClaims"

// TokenVerifier validates a presented token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*pkgAuth.Claims, error)
}

// AuthRequired ensures a valid bearer token accompanies the request.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifier.VerifyToken(extractToken(c))
		if err != nil {
			switch {
			case errors.Is(err, pkgAuth.ErrTokenMissing),
				errors.Is(err, pkgAuth.ErrTokenMalformed),
				errors.Is(err, pkgAuth.ErrTokenExpired):
				c.AbortWithStatus(http.StatusUnauthorized)
			default:
				c.AbortWithStatus(http.StatusInternalServerError)
			}
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
