package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireachef/backend/internal/middleware"
	"github.com/hireachef/backend/internal/service"
)

// FavoriteHandler serves the caller's saved chefs.
type FavoriteHandler struct {
	favoriteService service.IFavoriteService
	authService     service.IAuthService
}

func NewFavoriteHandler(favoriteService service.IFavoriteService, authService service.IAuthService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, authService: authService}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites", middleware.Auth(h.authService))
	{
		favorites.GET("", h.ListFavorites)
		favorites.GET("/:id", h.CheckFavorite)
		favorites.POST("/:id", h.AddFavorite)
		favorites.DELETE("/:id", h.RemoveFavorite)
	}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chefs, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chefs": chefs})
}

func (h *FavoriteHandler) CheckFavorite(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chefID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef id"})
		return
	}

	isFavorite, err := h.favoriteService.IsFavorite(c.Request.Context(), userID, chefID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": isFavorite})
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chefID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef id"})
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), userID, chefID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chef added to favorites"})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chefID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef id"})
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, chefID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chef removed from favorites"})
}
