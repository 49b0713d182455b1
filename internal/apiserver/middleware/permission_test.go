package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferrohub/ferrohub/internal/apiserver/database"
	"github.com/ferrohub/ferrohub/internal/apiserver/rbac"
	"github.com/ferrohub/ferrohub/internal/common/config"
	"github.com/ferrohub/ferrohub/internal/common/errorx"

	jwtauth "github.com/ferrohub/ferrohub/internal/auth/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequirePermission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	user := &database.User{Email: "clerk@example.com", Username: "clerk", PasswordHash: "h"}
	require.NoError(t, db.CreateUser(ctx, user))
	perm := &database.Permission{Name: "users:read", Resource: "users", Action: "read"}
	require.NoError(t, db.CreatePermission(ctx, perm))
	require.NoError(t, db.AssignUserPermissions(ctx, user.ID, []string{perm.ID}))

	checker := rbac.NewChecker(db, zap.NewNop())
	errs := errorx.NewHandler(zap.NewNop())

	r := gin.New()
	r.GET("/users", fakeAuth(user.ID), RequirePermission(checker, errs, "users", "read"), ok)
	r.DELETE("/users", fakeAuth(user.ID), RequirePermission(checker, errs, "users", "delete"), ok)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClaimsKey, &jwtauth.Claims{UserID: userID})
		c.Next()
	}
}

func ok(c *gin.Context) {
	c.Status(http.StatusOK)
}
