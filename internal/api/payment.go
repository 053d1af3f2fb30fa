package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireachef/backend/internal/middleware"
	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
)

type CreatePaymentRequest struct {
	BookingID     string `json:"booking_id" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

type RefundPaymentRequest struct {
	Reason string `json:"reason"`
}

// PaymentHandler serves booking payments.
type PaymentHandler struct {
	paymentService service.IPaymentService
	authService    service.IAuthService
}

func NewPaymentHandler(paymentService service.IPaymentService, authService service.IAuthService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, authService: authService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/payments", middleware.Auth(h.authService))
	{
		payments.POST("", h.CreateIntent)
		payments.GET("", h.ListPayments)
		payments.GET("/earnings", middleware.RequireRoles(models.RoleChef), h.ChefEarnings)
		payments.GET("/:id", h.GetPayment)
		payments.POST("/:id/confirm", h.ConfirmPayment)
		payments.POST("/:id/refund", middleware.RequireRoles(models.RoleAdmin), h.RefundPayment)
	}
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	payment, intent, err := h.paymentService.CreateIntent(c.Request.Context(), userID, bookingID, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"payment":       payment,
		"client_secret": intent.ClientSecret,
	})
}

func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	payment, err := h.paymentService.Confirm(c.Request.Context(), userID, paymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	var req RefundPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.Refund(c.Request.Context(), paymentID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	payment, err := h.paymentService.Get(c.Request.Context(), userID, middleware.CallerRole(c), paymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	payments, total, err := h.paymentService.ListForUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": Pagination{Page: page, Limit: limit, Total: total},
	})
}

func (h *PaymentHandler) ChefEarnings(c *gin.Context) {
	chefID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	totalCents, count, err := h.paymentService.ChefEarnings(c.Request.Context(), chefID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_cents":   totalCents,
		"payment_count": count,
	})
}
