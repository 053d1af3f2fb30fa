package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, profilePictureURL string) (*models.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
	GenerateToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*types.TokenClaims, error)
}

// IChefService defines the interface for the chef directory
type IChefService interface {
	ListChefs(ctx context.Context, params ChefListParams) ([]models.User, int64, error)
	GetChef(ctx context.Context, chefID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, chefID uuid.UUID, update ChefProfileUpdate) (*models.ChefProfile, error)
	AddGalleryImage(ctx context.Context, chefID uuid.UUID, imageURL string) (*models.ChefProfile, error)
	Availability(ctx context.Context, chefID uuid.UUID, date time.Time) (*DayAvailability, error)
}

// IBookingService defines the interface for the booking lifecycle
type IBookingService interface {
	Create(ctx context.Context, userID uuid.UUID, params BookingCreateParams) (*models.Booking, error)
	List(ctx context.Context, callerID uuid.UUID, callerRole models.Role, params BookingListParams) ([]models.Booking, int64, error)
	Get(ctx context.Context, callerID uuid.UUID, callerRole models.Role, bookingID uuid.UUID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole models.Role, bookingID uuid.UUID, target models.BookingStatus) (*models.Booking, error)
	UpdateDetails(ctx context.Context, callerID uuid.UUID, bookingID uuid.UUID, update BookingDetailsUpdate) (*models.Booking, error)
	Cancel(ctx context.Context, callerID uuid.UUID, callerRole models.Role, bookingID uuid.UUID, reason string) (*models.Booking, error)
	StatusCounts(ctx context.Context, callerID uuid.UUID, callerRole models.Role) (map[models.BookingStatus]int64, error)
}

// IReviewService defines the interface for chef reviews
type IReviewService interface {
	Create(ctx context.Context, userID, chefID uuid.UUID, rating int, title, comment string) (*models.Review, error)
	Get(ctx context.Context, reviewID uuid.UUID) (*models.Review, error)
	ListByChef(ctx context.Context, chefID uuid.UUID, page, limit int) ([]models.Review, int64, error)
	Update(ctx context.Context, callerID uuid.UUID, callerRole models.Role, reviewID uuid.UUID, rating *int, title, comment *string) (*models.Review, error)
	Delete(ctx context.Context, callerID uuid.UUID, callerRole models.Role, reviewID uuid.UUID) error
	RatingDistribution(ctx context.Context, chefID uuid.UUID) (map[int]int64, error)
}

// IMenuService defines the interface for menus and categories
type IMenuService interface {
	CreateMenu(ctx context.Context, chefID uuid.UUID, name, description string, priceCents int64, items []MenuItemInput) (*models.Menu, error)
	ListByChef(ctx context.Context, chefID uuid.UUID) ([]models.Menu, error)
	GetMenu(ctx context.Context, menuID uuid.UUID) (*models.Menu, error)
	UpdateMenu(ctx context.Context, chefID, menuID uuid.UUID, name, description string, priceCents int64, items []MenuItemInput) (*models.Menu, error)
	DeleteMenu(ctx context.Context, callerID uuid.UUID, callerRole models.Role, menuID uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name, description, imageURL string) (*models.Category, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, name, description, imageURL string) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
}

// IFavoriteService defines the interface for favorite chefs
type IFavoriteService interface {
	Add(ctx context.Context, userID, chefID uuid.UUID) error
	Remove(ctx context.Context, userID, chefID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]models.User, error)
	IsFavorite(ctx context.Context, userID, chefID uuid.UUID) (bool, error)
}

// INotificationService defines the interface for user notifications
type INotificationService interface {
	Notify(ctx context.Context, userID uuid.UUID, notifType, message string, data map[string]interface{})
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]models.Notification, int64, int64, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error
}

// IPaymentService defines the interface for booking payments
type IPaymentService interface {
	CreateIntent(ctx context.Context, userID, bookingID uuid.UUID, paymentMethod string) (*models.Payment, *PaymentIntent, error)
	Confirm(ctx context.Context, userID, paymentID uuid.UUID) (*models.Payment, error)
	Refund(ctx context.Context, paymentID uuid.UUID, reason string) (*models.Payment, error)
	Get(ctx context.Context, callerID uuid.UUID, callerRole models.Role, paymentID uuid.UUID) (*models.Payment, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Payment, int64, error)
	ChefEarnings(ctx context.Context, chefID uuid.UUID) (int64, int64, error)
}

// IAdminService defines the interface for the admin surface
type IAdminService interface {
	Overview(ctx context.Context) (*AdminOverview, error)
	ListUsers(ctx context.Context, params AdminUserListParams) ([]models.User, int64, error)
	ChangeRole(ctx context.Context, userID uuid.UUID, newRole models.Role) (*models.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
