package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto
// HTTP status codes; anything else becomes a logged 500.
var (
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrChefNotFound         = errors.New("chef not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrMenuNotFound         = errors.New("menu not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotAuthorized        = errors.New("not authorized")
	ErrInvalidRole          = errors.New("invalid role")

	// Booking business rules
	ErrChefRateUnset      = errors.New("chef has no published hourly rate")
	ErrBookingNotPending  = errors.New("cannot update a booking that is no longer pending")
	ErrCancellationWindow = errors.New("cannot cancel booking less than 24 hours before start time")
	ErrInvalidStatus      = errors.New("invalid booking status")

	// Review business rules
	ErrDuplicateReview = errors.New("you have already reviewed this chef")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")

	// Payments
	ErrPaymentNotSucceeded = errors.New("payment not successful")
	ErrAlreadyRefunded     = errors.New("payment already refunded")
)
