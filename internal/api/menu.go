package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireachef/backend/internal/middleware"
	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
)

type MenuRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	PriceCents  int64                   `json:"price_cents"`
	Items       []service.MenuItemInput `json:"items"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// MenuHandler serves chef menus and cuisine categories.
type MenuHandler struct {
	menuService service.IMenuService
	authService service.IAuthService
}

func NewMenuHandler(menuService service.IMenuService, authService service.IAuthService) *MenuHandler {
	return &MenuHandler{menuService: menuService, authService: authService}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.Auth(h.authService)
	chefOnly := middleware.RequireRoles(models.RoleChef)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	router.GET("/chefs/:id/menus", h.ListChefMenus)

	menus := router.Group("/menus")
	{
		menus.GET("/:id", h.GetMenu)
		menus.POST("", auth, chefOnly, h.CreateMenu)
		menus.PUT("/:id", auth, chefOnly, h.UpdateMenu)
		menus.DELETE("/:id", auth, h.DeleteMenu)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", auth, adminOnly, h.CreateCategory)
		categories.PUT("/:id", auth, adminOnly, h.UpdateCategory)
		categories.DELETE("/:id", auth, adminOnly, h.DeleteCategory)
	}
}

func (h *MenuHandler) ListChefMenus(c *gin.Context) {
	chefID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef id"})
		return
	}

	menus, err := h.menuService.ListByChef(c.Request.Context(), chefID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": menus})
}

func (h *MenuHandler) GetMenu(c *gin.Context) {
	menuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return
	}

	menu, err := h.menuService.GetMenu(c.Request.Context(), menuID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *MenuHandler) CreateMenu(c *gin.Context) {
	chefID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu, err := h.menuService.CreateMenu(c.Request.Context(), chefID, req.Name, req.Description, req.PriceCents, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, menu)
}

func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	chefID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	menuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return
	}

	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu, err := h.menuService.UpdateMenu(c.Request.Context(), chefID, menuID, req.Name, req.Description, req.PriceCents, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	menuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return
	}

	if err := h.menuService.DeleteMenu(c.Request.Context(), userID, middleware.CallerRole(c), menuID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu deleted"})
}

func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.menuService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.menuService.CreateCategory(c.Request.Context(), req.Name, req.Description, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.menuService.UpdateCategory(c.Request.Context(), categoryID, req.Name, req.Description, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	if err := h.menuService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
