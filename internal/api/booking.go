package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hireachef/backend/internal/middleware"
	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
)

type CreateBookingRequest struct {
	ChefID          string `json:"chef_id" binding:"required"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	Time            string `json:"time"`                    // HH:MM
	DurationHours   int    `json:"duration_hours"`
	NumberOfGuests  int    `json:"number_of_guests" binding:"required,min=1"`
	Occasion        string `json:"occasion"`
	MenuID          string `json:"menu_id"`
	SpecialRequests string `json:"special_requests"`
	Location        string `json:"location" binding:"required"`
	ContactPhone    string `json:"contact_phone"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	bookingService service.IBookingService
	authService    service.IAuthService
	rateLimiter    *middleware.RateLimiter
}

func NewBookingHandler(bookingService service.IBookingService, authService service.IAuthService, rateLimiter *middleware.RateLimiter) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, authService: authService, rateLimiter: rateLimiter}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings", middleware.Auth(h.authService))
	{
		bookings.POST("", h.rateLimiter.Middleware(), h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/stats", h.BookingStats)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.PUT("/:id", h.UpdateDetails)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chefID, err := uuid.Parse(req.ChefID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chef id"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}
	if req.Time != "" {
		if _, err := time.Parse("15:04", req.Time); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time, expected HH:MM"})
			return
		}
	}

	params := service.BookingCreateParams{
		ChefID:          chefID,
		Date:            date,
		Time:            req.Time,
		DurationHours:   req.DurationHours,
		NumberOfGuests:  req.NumberOfGuests,
		Occasion:        req.Occasion,
		SpecialRequests: req.SpecialRequests,
		Location:        req.Location,
		ContactPhone:    req.ContactPhone,
	}
	if req.MenuID != "" {
		menuID, err := uuid.Parse(req.MenuID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
			return
		}
		params.MenuID = &menuID
	}

	booking, err := h.bookingService.Create(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	params := service.BookingListParams{
		Status: c.Query("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}

	bookings, total, err := h.bookingService.List(c.Request.Context(), userID, middleware.CallerRole(c), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

func (h *BookingHandler) BookingStats(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	counts, err := h.bookingService.StatusCounts(c.Request.Context(), userID, middleware.CallerRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), userID, middleware.CallerRole(c), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := models.ParseBookingStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking status"})
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), userID, middleware.CallerRole(c), bookingID, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) UpdateDetails(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var update service.BookingDetailsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateDetails(c.Request.Context(), userID, bookingID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), userID, middleware.CallerRole(c), bookingID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
