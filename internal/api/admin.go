package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireachef/backend/internal/middleware"
	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
)

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AdminHandler serves the admin-only management endpoints.
type AdminHandler struct {
	adminService service.IAdminService
	authService  service.IAuthService
}

func NewAdminHandler(adminService service.IAdminService, authService service.IAuthService) *AdminHandler {
	return &AdminHandler{adminService: adminService, authService: authService}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", middleware.Auth(h.authService), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/overview", h.Overview)
		admin.GET("/users", h.ListUsers)
		admin.PATCH("/users/:id/role", h.ChangeRole)
		admin.DELETE("/users/:id", h.DeleteUser)
	}
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.adminService.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := service.AdminUserListParams{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}

	users, total, err := h.adminService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	user, err := h.adminService.ChangeRole(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
