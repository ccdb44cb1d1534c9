package handlers

import (
	"github.com/gin-gonic/gin"

	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
	"github.com/ashmarov/ticketgate/internal/server/http/middleware"
)

// CurrentClaims extracts authenticated session claims from the gin context.
func CurrentClaims(c *gin.Context) *pkgAuth.Claims {
	val, ok := c.Get(middleware.ClaimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := val.(*pkgAuth.Claims)
	return claims
}
