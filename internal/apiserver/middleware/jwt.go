package middleware

import (
	"strings"

	"github.com/ferrohub/ferrohub/internal/auth/jwt"
	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key carrying the authenticated identity.
const ClaimsKey = "claims"

// JWTAuthMiddleware creates a middleware that validates bearer tokens and
// attaches the decoded claims to the request context. Missing, malformed
// and expired tokens all reject; protected routes never run anonymously.
func JWTAuthMiddleware(jwtService *jwt.Service, errs *errorx.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errs.JSON(c, errorx.ErrUnauthenticated)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			errs.JSON(c, errorx.ErrUnauthenticated)
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			errs.JSON(c, errorx.ErrUnauthenticated)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the authenticated identity, or nil when the
// request did not pass the JWT gate.
func ClaimsFromContext(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}
