package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hireachef/backend/config"
	"github.com/hireachef/backend/internal/events"
	"github.com/hireachef/backend/internal/middleware"
	"github.com/hireachef/backend/internal/service"
)

// Dependencies carries the shared infrastructure handed to SetupAPI.
// Redis, S3 and the event publisher are optional; services degrade to
// uncached/local behavior when they are nil.
type Dependencies struct {
	DB        *gorm.DB
	Redis     *redis.Client
	S3        *config.S3Config
	Publisher *events.Publisher
	Provider  service.PaymentProvider
	JWTSecret string
}

// SetupAPI wires services and handlers onto /api/v1.
func SetupAPI(router *gin.Engine, deps Dependencies) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(deps.DB, deps.JWTSecret)
		imageService := service.NewImageService(deps.S3)
		chefService := service.NewChefService(deps.DB, deps.Redis)
		notificationService := service.NewNotificationService(deps.DB)
		bookingService := service.NewBookingService(deps.DB, notificationService, deps.Publisher)
		reviewService := service.NewReviewService(deps.DB, notificationService)
		menuService := service.NewMenuService(deps.DB)
		favoriteService := service.NewFavoriteService(deps.DB)
		paymentService := service.NewPaymentService(deps.DB, deps.Provider, notificationService, deps.Publisher)
		adminService := service.NewAdminService(deps.DB)

		bookingLimiter := middleware.NewBookingCreationRateLimiter(deps.Redis)
		reviewLimiter := middleware.NewReviewCreationRateLimiter(deps.Redis)

		NewAuthHandler(authService, imageService).RegisterRoutes(v1)
		NewChefHandler(chefService, authService, imageService).RegisterRoutes(v1)
		NewBookingHandler(bookingService, authService, bookingLimiter).RegisterRoutes(v1)
		NewReviewHandler(reviewService, authService, reviewLimiter).RegisterRoutes(v1)
		NewMenuHandler(menuService, authService).RegisterRoutes(v1)
		NewFavoriteHandler(favoriteService, authService).RegisterRoutes(v1)
		NewNotificationHandler(notificationService, authService).RegisterRoutes(v1)
		NewPaymentHandler(paymentService, authService).RegisterRoutes(v1)
		NewAdminHandler(adminService, authService).RegisterRoutes(v1)
	}
}
