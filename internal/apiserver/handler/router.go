package handler

import (
	"net/http"

	"github.com/ferrohub/ferrohub/internal/apiserver/middleware"
	"github.com/ferrohub/ferrohub/pkg/version"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API routes and their guard chains onto the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(middleware.CORSMiddleware(h.cfg.CORS))
	if h.cfg.RateLimit.Enabled {
		router.Use(middleware.NewRateLimiter(h.cfg.RateLimit).Middleware())
	}

	auth := middleware.JWTAuthMiddleware(h.jwtService, h.errs)
	companyGate := middleware.CompanyContextMiddleware(h.resolver, h.errs)
	require := func(resource, action string) gin.HandlerFunc {
		return middleware.RequirePermission(h.checker, h.errs, resource, action)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})

	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/change-password", auth, h.ChangePassword)

	companies := router.Group("/api/companies", auth)
	{
		companies.GET("", h.ListCompanies)
		companies.POST("", h.CreateCompany)
		companies.GET("/settings", companyGate, h.GetCompanySettings)
		companies.PUT("/settings", companyGate, h.UpdateCompanySettings)
		companies.POST("/members", h.AddUserToCompany)
		companies.GET("/:id", h.GetCompany)
		companies.PATCH("/:id", h.UpdateCompany)
		companies.DELETE("/:id", h.DeleteCompany)
	}

	products := router.Group("/api/products", auth, companyGate)
	{
		products.GET("", h.ListProducts)
		products.POST("", require("products", "manage"), h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", require("products", "manage"), h.UpdateProduct)
		products.DELETE("/:id", require("products", "manage"), h.DeleteProduct)
	}

	inventory := router.Group("/api/inventory", auth, companyGate)
	{
		inventory.GET("", h.ListInventory)
		inventory.PUT("", require("inventory", "manage"), h.UpdateInventory)
	}

	router.GET("/api/acl/permissions", auth, h.ListPermissions)
	router.POST("/api/acl/permission", auth, require("permissions", "assign"), h.CreatePermission)

	acl := router.Group("/acl", auth)
	{
		acl.GET("/roles", h.ListRoles)
		acl.POST("/role", require("roles", "create"), h.CreateRole)
		acl.PATCH("/role/:id", require("roles", "update"), h.UpdateRole)
		acl.DELETE("/role/:id", require("roles", "delete"), h.DeleteRole)

		acl.POST("/assign-permission", require("permissions", "assign"), h.AssignRolePermissions)
		acl.POST("/remove-permission", require("permissions", "assign"), h.RemoveRolePermissions)
		acl.POST("/assign-role", require("roles", "update"), h.AssignRole)
		acl.POST("/remove-role", require("roles", "update"), h.RemoveRole)
		acl.POST("/assign-user-permission", require("permissions", "assign"), h.AssignUserPermissions)
		acl.POST("/remove-user-permission", require("permissions", "assign"), h.RemoveUserPermissions)

		acl.GET("/user-roles/:userId", h.GetUserRoles)
		acl.GET("/role-permissions/:roleId", h.GetRolePermissions)
		acl.GET("/user-permissions/:userId", h.GetUserPermissions)
		acl.GET("/effective-permissions/:userId", h.GetEffectivePermissions)
	}

	users := router.Group("/users", auth)
	{
		users.GET("", require("users", "read"), h.ListUsers)
		users.POST("", require("users", "create"), h.CreateUser)
		users.GET("/:id", require("users", "read"), h.GetUser)
		users.PUT("/:id", require("users", "update"), h.UpdateUser)
		users.DELETE("/:id", require("users", "delete"), h.DeleteUser)
	}
}
