package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireachef/backend/internal/middleware"
	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
)

// ChefHandler serves the public chef directory and the chef-only
// profile management surface.
type ChefHandler struct {
	chefService  service.IChefService
	authService  service.IAuthService
	imageService *service.ImageService
}

func NewChefHandler(chefService service.IChefService, authService service.IAuthService, imageService *service.ImageService) *ChefHandler {
	return &ChefHandler{chefService: chefService, authService: authService, imageService: imageService}
}

func (h *ChefHandler) RegisterRoutes(router *gin.RouterGroup) {
	chefs := router.Group("/chefs")
	{
		chefs.GET("", h.ListChefs)
		chefs.GET("/:id", h.GetChef)
		chefs.GET("/:id/availability", h.Availability)

		auth := middleware.Auth(h.authService)
		chefOnly := middleware.RequireRoles(models.RoleChef)
		chefs.PUT("/profile", auth, chefOnly, h.UpdateProfile)
		chefs.POST("/gallery", auth, chefOnly, h.UploadGalleryImage)
	}
}

func (h *ChefHandler) ListChefs(c *gin.Context) {
	params := service.ChefListParams{
		Query:         c.Query("q"),
		Cuisine:       c.Query("cuisine"),
		Location:      c.Query("location"),
		OnlyAvailable: c.Query("available") == "true",
		Page:          queryInt(c, "page", 1),
		Limit:         queryInt(c, "limit", 20),
	}

	chefs, total, err := h.chefService.ListChefs(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chefs":      chefs,
		"pagination": Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

func (h *ChefHandler) GetChef(c *gin.Context) {
	chefID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef id"})
		return
	}

	chef, err := h.chefService.GetChef(c.Request.Context(), chefID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chef)
}

// Availability returns booked slots and working hours for a date,
// passed as ?date=YYYY-MM-DD (default today).
func (h *ChefHandler) Availability(c *gin.Context) {
	chefID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef id"})
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	avail, err := h.chefService.Availability(c.Request.Context(), chefID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

func (h *ChefHandler) UpdateProfile(c *gin.Context) {
	chefID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var update service.ChefProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.chefService.UpdateProfile(c.Request.Context(), chefID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ChefHandler) UploadGalleryImage(c *gin.Context) {
	chefID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	if !h.imageService.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	url, err := h.imageService.Upload(c.Request.Context(), "chef-gallery", fileHeader.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.chefService.AddGalleryImage(c.Request.Context(), chefID, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
