package handler

import (
	"github.com/ferrohub/ferrohub/internal/apiserver/cache"
	"github.com/ferrohub/ferrohub/internal/apiserver/database"
	"github.com/ferrohub/ferrohub/internal/apiserver/middleware"
	"github.com/ferrohub/ferrohub/internal/apiserver/rbac"
	"github.com/ferrohub/ferrohub/internal/auth/jwt"
	"github.com/ferrohub/ferrohub/internal/common/config"
	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the REST API
type Handler struct {
	db         database.Database
	jwtService *jwt.Service
	checker    *rbac.Checker
	resolver   *middleware.Resolver
	cache      cache.Cache
	errs       *errorx.Handler
	logger     *zap.Logger
	cfg        *config.APIServerConfig
}

// NewHandler creates the API handler
func NewHandler(
	db database.Database,
	jwtService *jwt.Service,
	checker *rbac.Checker,
	resolver *middleware.Resolver,
	c cache.Cache,
	logger *zap.Logger,
	cfg *config.APIServerConfig,
) *Handler {
	return &Handler{
		db:         db,
		jwtService: jwtService,
		checker:    checker,
		resolver:   resolver,
		cache:      c,
		errs:       errorx.NewHandler(logger),
		logger:     logger.Named("handler"),
		cfg:        cfg,
	}
}

// companyID resolves the acting company for the current request.
func (h *Handler) companyID(c *gin.Context) (string, bool) {
	id, ok := middleware.CompanyIDFromContext(c)
	if ok {
		return id, true
	}
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		h.errs.JSON(c, errorx.ErrUnauthenticated)
		return "", false
	}
	id, err := h.resolver.Resolve(c, claims.UserID)
	if err != nil {
		h.errs.JSON(c, err)
		return "", false
	}
	return id, true
}
