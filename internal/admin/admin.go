// Package admin holds the operations reserved for ADMIN users.
package admin

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"medistore/internal/apperr"
	"medistore/internal/cache"
	"medistore/internal/models"
)

// Service reads the whole store and writes user status and categories.
type Service struct {
	db    *gorm.DB
	cache cache.Cache
}

// NewService wires the store. c may be nil.
func NewService(db *gorm.DB, c cache.Cache) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{db: db, cache: c}
}

// Stats is the dashboard summary.
type Stats struct {
	Users     int64           `json:"users"`
	Medicines int64           `json:"medicines"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Stats counts users, medicines and orders and sums order totals.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	var st Stats
	if err := db.Model(&models.User{}).Count(&st.Users).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to count users")
	}
	if err := db.Model(&models.Medicine{}).Count(&st.Medicines).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to count medicines")
	}
	if err := db.Model(&models.Order{}).Count(&st.Orders).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to count orders")
	}
	err := db.Model(&models.Order{}).Select("COALESCE(SUM(total_price), 0)").Row().Scan(&st.Revenue)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to sum revenue")
	}
	st.Revenue = st.Revenue.Round(2)
	return &st, nil
}

// ListUsers returns every user, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch users")
	}
	return users, nil
}

// UpdateUserStatus blocks or reactivates a user.
func (s *Service) UpdateUserStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error) {
	if !status.Valid() {
		return nil, apperr.New(apperr.Validation, "Invalid status. Must be active or blocked")
	}
	db := s.db.WithContext(ctx)
	var u models.User
	err := db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch user")
	}
	if err := db.Model(&u).Update("status", status).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to update user status")
	}
	u.Status = status
	return &u, nil
}

// CreateCategory adds a category and drops the cached category list.
func (s *Service) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "Name is required")
	}
	c := models.Category{Name: name, Description: strings.TrimSpace(description)}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to create category")
	}
	if err := s.cache.Delete(ctx, cache.CategoriesKey); err != nil {
		log.Printf("cache delete %s: %v", cache.CategoriesKey, err)
	}
	return &c, nil
}
