package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hireachef/backend/internal/models"
)

const chefListCacheKey = "chefs:list:first_page"
const chefListCacheTTL = time.Minute

// ChefListParams filters the public chef listing.
type ChefListParams struct {
	Query         string
	Cuisine       string
	Location      string
	OnlyAvailable bool
	Page          int
	Limit         int
}

// ChefProfileUpdate carries chef-editable profile fields. Pointers
// distinguish "leave unchanged" from zero values.
type ChefProfileUpdate struct {
	Specialty        *string   `json:"specialty"`
	Experience       *int      `json:"experience"`
	Bio              *string   `json:"bio"`
	Location         *string   `json:"location"`
	HourlyRateCents  *int64    `json:"hourly_rate_cents"`
	GuestChargeCents *int64    `json:"guest_charge_cents"`
	ServiceChargePct *float64  `json:"service_charge_pct"`
	Availability     *bool     `json:"availability"`
	WorkStart        *string   `json:"work_start"`
	WorkEnd          *string   `json:"work_end"`
	SlotMinutes      *int      `json:"slot_minutes"`
	Cuisines         *[]string `json:"cuisines"`
	Instagram        *string   `json:"instagram"`
	Website          *string   `json:"website"`
}

// DayAvailability is the per-date slot view returned to booking forms.
type DayAvailability struct {
	Date        string   `json:"date"`
	WorkStart   string   `json:"work_start"`
	WorkEnd     string   `json:"work_end"`
	SlotMinutes int      `json:"slot_minutes"`
	BookedSlots []string `json:"booked_slots"`
}

// ChefService handles the public chef directory and chef-owned profile
// management.
type ChefService struct {
	db    *gorm.DB
	redis *redis.Client // optional; nil disables caching
}

var _ IChefService = (*ChefService)(nil)

func NewChefService(db *gorm.DB, redisClient *redis.Client) *ChefService {
	return &ChefService{db: db, redis: redisClient}
}

// ListChefs returns users with role Chef, filtered and paginated.
// Free-text search orders by embedding distance on PostgreSQL and
// falls back to LIKE elsewhere.
func (s *ChefService) ListChefs(ctx context.Context, params ChefListParams) ([]models.User, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	// The unfiltered first page is the hot path; serve it from Redis.
	if s.cacheable(params) {
		if chefs, total, ok := s.cachedFirstPage(ctx); ok {
			return chefs, total, nil
		}
	}

	query := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN chef_profiles ON chef_profiles.user_id = users.id AND chef_profiles.deleted_at IS NULL").
		Where("users.role = ?", models.RoleChef).
		Preload("ChefProfile")

	if params.Query != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(params.Query)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "chef_profiles.embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(params.Query) + "%"
			query = query.Where(
				"LOWER(chef_profiles.specialty) LIKE ? OR LOWER(chef_profiles.bio) LIKE ? OR LOWER(users.name) LIKE ?",
				like, like, like)
		}
	}
	if params.Cuisine != "" {
		like := "%" + strings.ToLower(params.Cuisine) + "%"
		query = query.Where("LOWER(chef_profiles.specialty) LIKE ? OR LOWER(chef_profiles.cuisines) LIKE ?", like, like)
	}
	if params.Location != "" {
		query = query.Where("LOWER(chef_profiles.location) LIKE ?", "%"+strings.ToLower(params.Location)+"%")
	}
	if params.OnlyAvailable {
		query = query.Where("chef_profiles.availability = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var chefs []models.User
	err := query.
		Order("chef_profiles.featured DESC, chef_profiles.rating DESC").
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&chefs).Error
	if err != nil {
		return nil, 0, err
	}

	if s.cacheable(params) {
		s.storeFirstPage(ctx, chefs, total)
	}

	return chefs, total, nil
}

// GetChef loads a single chef with their profile.
func (s *ChefService) GetChef(ctx context.Context, chefID uuid.UUID) (*models.User, error) {
	var chef models.User
	err := s.db.WithContext(ctx).
		Preload("ChefProfile").
		Where("id = ? AND role = ?", chefID, models.RoleChef).
		First(&chef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChefNotFound
		}
		return nil, err
	}
	return &chef, nil
}

// UpdateProfile applies a chef's own profile changes and refreshes the
// search embedding.
func (s *ChefService) UpdateProfile(ctx context.Context, chefID uuid.UUID, update ChefProfileUpdate) (*models.ChefProfile, error) {
	var profile models.ChefProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", chefID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChefNotFound
		}
		return nil, err
	}

	if update.Specialty != nil {
		profile.Specialty = *update.Specialty
	}
	if update.Experience != nil {
		profile.Experience = *update.Experience
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}
	if update.HourlyRateCents != nil {
		profile.HourlyRateCents = *update.HourlyRateCents
	}
	if update.GuestChargeCents != nil {
		profile.GuestChargeCents = *update.GuestChargeCents
	}
	if update.ServiceChargePct != nil {
		profile.ServiceChargePct = *update.ServiceChargePct
	}
	if update.Availability != nil {
		profile.Availability = *update.Availability
	}
	if update.WorkStart != nil {
		profile.WorkStart = *update.WorkStart
	}
	if update.WorkEnd != nil {
		profile.WorkEnd = *update.WorkEnd
	}
	if update.SlotMinutes != nil && *update.SlotMinutes > 0 {
		profile.SlotMinutes = *update.SlotMinutes
	}
	if update.Cuisines != nil {
		profile.Cuisines = models.JSONBStringArray(*update.Cuisines)
	}
	if update.Instagram != nil {
		profile.Instagram = *update.Instagram
	}
	if update.Website != nil {
		profile.Website = *update.Website
	}

	profile.Embedding = GenerateEmbedding(profile.Specialty + " " + strings.Join(profile.Cuisines, " ") + " " + profile.Bio)

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return &profile, nil
}

// AddGalleryImage appends an uploaded image URL to the chef's gallery.
func (s *ChefService) AddGalleryImage(ctx context.Context, chefID uuid.UUID, imageURL string) (*models.ChefProfile, error) {
	var profile models.ChefProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", chefID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChefNotFound
		}
		return nil, err
	}

	profile.Gallery = append(profile.Gallery, imageURL)
	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Availability returns the chef's working hours and the time slots
// already taken by pending or confirmed bookings on the given date.
// This only surfaces conflicts; it does not reject double bookings.
func (s *ChefService) Availability(ctx context.Context, chefID uuid.UUID, date time.Time) (*DayAvailability, error) {
	chef, err := s.GetChef(ctx, chefID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var bookings []models.Booking
	err = s.db.WithContext(ctx).
		Where("chef_id = ? AND date >= ? AND date < ? AND status IN ?",
			chefID, dayStart, dayEnd,
			[]models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	avail := &DayAvailability{
		Date:        dayStart.Format("2006-01-02"),
		WorkStart:   "09:00",
		WorkEnd:     "17:00",
		SlotMinutes: 60,
		BookedSlots: make([]string, 0, len(bookings)),
	}
	if p := chef.ChefProfile; p != nil {
		if p.WorkStart != "" {
			avail.WorkStart = p.WorkStart
		}
		if p.WorkEnd != "" {
			avail.WorkEnd = p.WorkEnd
		}
		if p.SlotMinutes > 0 {
			avail.SlotMinutes = p.SlotMinutes
		}
	}
	for _, b := range bookings {
		if b.Time != "" {
			avail.BookedSlots = append(avail.BookedSlots, b.Time)
		}
	}

	return avail, nil
}

func (s *ChefService) cacheable(params ChefListParams) bool {
	return s.redis != nil &&
		params.Page == 1 &&
		params.Query == "" && params.Cuisine == "" && params.Location == "" &&
		!params.OnlyAvailable
}

type cachedChefPage struct {
	Chefs []models.User `json:"chefs"`
	Total int64         `json:"total"`
}

func (s *ChefService) cachedFirstPage(ctx context.Context) ([]models.User, int64, bool) {
	raw, err := s.redis.Get(ctx, chefListCacheKey).Bytes()
	if err != nil {
		return nil, 0, false
	}
	var page cachedChefPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, 0, false
	}
	return page.Chefs, page.Total, true
}

func (s *ChefService) storeFirstPage(ctx context.Context, chefs []models.User, total int64) {
	raw, err := json.Marshal(cachedChefPage{Chefs: chefs, Total: total})
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, chefListCacheKey, raw, chefListCacheTTL).Err(); err != nil {
		log.Printf("[ChefService] failed to cache chef list: %v", err)
	}
}

func (s *ChefService) invalidateListCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, chefListCacheKey).Err(); err != nil {
		log.Printf("[ChefService] failed to invalidate chef list cache: %v", err)
	}
}
