package middleware

import (
	"github.com/ferrohub/ferrohub/internal/apiserver/rbac"
	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates an operation on a specific (resource, action)
// permission. Composable with the JWT and company-context gates.
func RequirePermission(checker *rbac.Checker, errs *errorx.Handler, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			errs.JSON(c, errorx.ErrUnauthenticated)
			return
		}

		ok, err := checker.HasPermission(c.Request.Context(), claims.UserID, resource, action)
		if err != nil {
			errs.JSON(c, err)
			return
		}
		if !ok {
			errs.JSON(c, errorx.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}
