package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hireachef/backend/internal/models"
)

// ReviewService manages chef reviews and keeps the denormalized
// rating aggregate on chef profiles in step with the review rows.
type ReviewService struct {
	db            *gorm.DB
	notifications *NotificationService
}

var _ IReviewService = (*ReviewService)(nil)

func NewReviewService(db *gorm.DB, notifications *NotificationService) *ReviewService {
	return &ReviewService{db: db, notifications: notifications}
}

// Create adds a review for a chef. One review per (chef, author); the
// aggregate refresh runs inside the same transaction as the insert so
// the profile never reflects a partial state.
func (s *ReviewService) Create(ctx context.Context, userID, chefID uuid.UUID, rating int, title, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var chef models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND role = ?", chefID, models.RoleChef).
		First(&chef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChefNotFound
		}
		return nil, err
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var existing models.Review
	err = s.db.WithContext(ctx).
		Where("chef_id = ? AND user_id = ?", chefID, userID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateReview
	}

	review := models.Review{
		ChefID:    chefID,
		UserID:    userID,
		UserName:  author.Name,
		UserImage: author.ProfilePictureURL,
		Rating:    rating,
		Title:     title,
		Comment:   comment,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			// The unique index is the real guard against concurrent
			// double submission.
			if strings.Contains(strings.ToLower(err.Error()), "unique") ||
				strings.Contains(strings.ToLower(err.Error()), "duplicate") {
				return ErrDuplicateReview
			}
			return err
		}
		return s.refreshAggregate(tx, chefID)
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, chefID, models.NotificationReviewReceived,
		fmt.Sprintf("%s left you a %d-star review", author.Name, rating),
		map[string]interface{}{"review_id": review.ID.String(), "rating": rating})

	return &review, nil
}

// Get loads one review.
func (s *ReviewService) Get(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// ListByChef returns a chef's reviews, newest first.
func (s *ReviewService) ListByChef(ctx context.Context, chefID uuid.UUID, page, limit int) ([]models.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Review{}).Where("chef_id = ?", chefID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Update edits a review. Only the author or an admin may edit; the
// edit is flagged and the chef aggregate is refreshed in the same
// transaction.
func (s *ReviewService) Update(ctx context.Context, callerID uuid.UUID, callerRole models.Role, reviewID uuid.UUID, rating *int, title, comment *string) (*models.Review, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidRating
	}

	var review models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		if review.UserID != callerID && !callerRole.Is(models.RoleAdmin) {
			return ErrNotAuthorized
		}

		if rating != nil {
			review.Rating = *rating
		}
		if title != nil {
			review.Title = *title
		}
		if comment != nil {
			review.Comment = *comment
		}
		now := time.Now()
		review.Edited = true
		review.EditedAt = &now

		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		return s.refreshAggregate(tx, review.ChefID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review (author or admin) and refreshes the chef
// aggregate in the same transaction. The delete is permanent; a
// soft-deleted row would still occupy the (chef, author) unique index
// and block the author from ever reviewing again.
func (s *ReviewService) Delete(ctx context.Context, callerID uuid.UUID, callerRole models.Role, reviewID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		if review.UserID != callerID && !callerRole.Is(models.RoleAdmin) {
			return ErrNotAuthorized
		}
		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return err
		}
		return s.refreshAggregate(tx, review.ChefID)
	})
}

// RatingDistribution returns how many reviews a chef has per star.
func (s *ReviewService) RatingDistribution(ctx context.Context, chefID uuid.UUID) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Select("rating, COUNT(*) as count").
		Where("chef_id = ?", chefID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		dist[row.Rating] = row.Count
	}
	return dist, nil
}

// refreshAggregate recomputes the chef's rating (mean, one decimal)
// and review count database-side, so concurrent writers cannot clobber
// each other with stale read-modify-write values.
func (s *ReviewService) refreshAggregate(tx *gorm.DB, chefID uuid.UUID) error {
	round := "ROUND(AVG(rating)::numeric, 1)"
	if tx.Dialector.Name() == "sqlite" {
		round = "ROUND(AVG(rating), 1)"
	}

	return tx.Model(&models.ChefProfile{}).
		Where("user_id = ?", chefID).
		Updates(map[string]interface{}{
			"rating": gorm.Expr(
				"COALESCE((SELECT "+round+" FROM reviews WHERE chef_id = ? AND deleted_at IS NULL), 0)", chefID),
			"review_count": gorm.Expr(
				"(SELECT COUNT(*) FROM reviews WHERE chef_id = ? AND deleted_at IS NULL)", chefID),
		}).Error
}
