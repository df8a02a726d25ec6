// Package catalog serves categories and medicines to shoppers, takes reviews
// and lets sellers manage the medicines they own.
package catalog

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"medistore/internal/apperr"
	"medistore/internal/cache"
	"medistore/internal/events"
	"medistore/internal/models"
)

// Service reads and writes the categories, medicines and reviews tables.
type Service struct {
	db     *gorm.DB
	cache  cache.Cache
	events events.Publisher
}

// NewService wires the store. c and pub may be nil.
func NewService(db *gorm.DB, c cache.Cache, pub events.Publisher) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{db: db, cache: c, events: pub}
}

// Filter narrows ListMedicines. Empty fields are ignored.
type Filter struct {
	CategoryID string
	Search     string
	MinPrice   string
	MaxPrice   string
}

// ListCategories returns every category sorted by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	cats := []models.Category{}
	if ok, err := s.cache.Get(ctx, cache.CategoriesKey, &cats); err != nil {
		log.Printf("cache get %s: %v", cache.CategoriesKey, err)
	} else if ok {
		return cats, nil
	}
	if err := s.db.WithContext(ctx).Order("name asc").Find(&cats).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch categories")
	}
	if err := s.cache.Set(ctx, cache.CategoriesKey, cats, cache.TTL); err != nil {
		log.Printf("cache set %s: %v", cache.CategoriesKey, err)
	}
	return cats, nil
}

// ListMedicines returns matching medicines, newest first, with their category
// and seller name.
func (s *Service) ListMedicines(ctx context.Context, f Filter) ([]models.Medicine, error) {
	q := withDetail(s.db.WithContext(ctx))
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.MinPrice != "" {
		lo, err := decimal.NewFromString(f.MinPrice)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "minPrice must be a number")
		}
		q = q.Where("price >= ?", lo)
	}
	if f.MaxPrice != "" {
		hi, err := decimal.NewFromString(f.MaxPrice)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "maxPrice must be a number")
		}
		q = q.Where("price <= ?", hi)
	}

	meds := []models.Medicine{}
	if err := q.Order("created_at desc").Find(&meds).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch medicines")
	}
	return meds, nil
}

// GetMedicine returns one medicine with its category and seller name.
func (s *Service) GetMedicine(ctx context.Context, id string) (*models.Medicine, error) {
	key := cache.MedicineKey(id)
	var m models.Medicine
	if ok, err := s.cache.Get(ctx, key, &m); err != nil {
		log.Printf("cache get %s: %v", key, err)
	} else if ok {
		return &m, nil
	}

	err := withDetail(s.db.WithContext(ctx)).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Medicine not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch medicine details")
	}
	if err := s.cache.Set(ctx, key, m, cache.TTL); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
	return &m, nil
}

// ReviewInput is a customer's rating of a medicine.
type ReviewInput struct {
	MedicineID string
	Rating     int
	Comment    string
}

// AddReview stores a review. Customers may review the same medicine again.
func (s *Service) AddReview(ctx context.Context, customerID string, in ReviewInput) (*models.Review, error) {
	if strings.TrimSpace(in.MedicineID) == "" || in.Rating == 0 {
		return nil, apperr.New(apperr.Validation, "MedicineId and rating are required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.New(apperr.Validation, "Rating must be between 1 and 5")
	}
	db := s.db.WithContext(ctx)
	var cnt int64
	if err := db.Model(&models.Medicine{}).Where("id = ?", in.MedicineID).Count(&cnt).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to add review")
	}
	if cnt == 0 {
		return nil, apperr.New(apperr.NotFound, "Medicine not found")
	}

	r := models.Review{
		MedicineID: in.MedicineID,
		CustomerID: customerID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := db.Create(&r).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to add review")
	}
	return &r, nil
}

func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Seller", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") })
}
