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

const notOwned = "Medicine not found or access denied"

// MedicineInput creates a medicine. Price and CategoryID are required.
type MedicineInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	Stock       *int
	Image       string
	CategoryID  string
}

// MedicineUpdate changes the fields that are non-nil.
type MedicineUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Image       *string
	CategoryID  *string
}

// CreateMedicine lists a new medicine owned by sellerID.
func (s *Service) CreateMedicine(ctx context.Context, sellerID string, in MedicineInput) (*models.Medicine, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil || strings.TrimSpace(in.CategoryID) == "" {
		return nil, apperr.New(apperr.Validation, "Name, price, and category are required")
	}
	if err := checkPrice(*in.Price); err != nil {
		return nil, err
	}
	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}
	if err := checkStock(stock); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if err := s.checkCategory(db, in.CategoryID); err != nil {
		return nil, err
	}

	m := models.Medicine{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		Stock:       stock,
		Image:       strings.TrimSpace(in.Image),
		CategoryID:  in.CategoryID,
		SellerID:    sellerID,
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, apperr.Wrap(err, "Failed to add medicine")
	}
	events.PublishAsync(s.events, events.MedicineCreated, m.ID, m)
	return &m, nil
}

// SellerMedicines lists sellerID's medicines, newest first.
func (s *Service) SellerMedicines(ctx context.Context, sellerID string) ([]models.Medicine, error) {
	meds := []models.Medicine{}
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&meds).Error
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch medicines")
	}
	return meds, nil
}

// UpdateMedicine applies in to a medicine owned by sellerID. Medicines owned
// by other sellers are reported as not found and left untouched.
func (s *Service) UpdateMedicine(ctx context.Context, sellerID, id string, in MedicineUpdate) (*models.Medicine, error) {
	db := s.db.WithContext(ctx)
	m, err := s.owned(db, sellerID, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.New(apperr.Validation, "Name cannot be empty")
		}
		changes["name"] = name
	}
	if in.Description != nil {
		changes["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if err := checkPrice(*in.Price); err != nil {
			return nil, err
		}
		changes["price"] = in.Price.Round(2)
	}
	if in.Stock != nil {
		if err := checkStock(*in.Stock); err != nil {
			return nil, err
		}
		changes["stock"] = *in.Stock
	}
	if in.Image != nil {
		changes["image"] = strings.TrimSpace(*in.Image)
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(db, *in.CategoryID); err != nil {
			return nil, err
		}
		changes["category_id"] = *in.CategoryID
	}

	if len(changes) > 0 {
		if err := db.Model(&models.Medicine{}).Where("id = ?", m.ID).Updates(changes).Error; err != nil {
			return nil, apperr.Wrap(err, "Failed to update medicine")
		}
	}
	updated, err := s.owned(db, sellerID, id)
	if err != nil {
		return nil, err
	}
	s.forget(ctx, id)
	events.PublishAsync(s.events, events.MedicineUpdated, id, updated)
	return updated, nil
}

// DeleteMedicine removes a medicine owned by sellerID.
func (s *Service) DeleteMedicine(ctx context.Context, sellerID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND seller_id = ?", id, sellerID).Delete(&models.Medicine{})
	if res.Error != nil {
		return apperr.Wrap(res.Error, "Failed to delete medicine")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, notOwned)
	}
	s.forget(ctx, id)
	events.PublishAsync(s.events, events.MedicineDeleted, id, map[string]string{"id": id, "sellerId": sellerID})
	return nil
}

func (s *Service) owned(db *gorm.DB, sellerID, id string) (*models.Medicine, error) {
	var m models.Medicine
	err := db.Preload("Category").Where("id = ? AND seller_id = ?", id, sellerID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, notOwned)
	}
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch medicine")
	}
	return &m, nil
}

func (s *Service) checkCategory(db *gorm.DB, id string) error {
	var cnt int64
	if err := db.Model(&models.Category{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return apperr.Wrap(err, "Failed to check category")
	}
	if cnt == 0 {
		return apperr.New(apperr.Validation, "Category %s does not exist", id)
	}
	return nil
}

func (s *Service) forget(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cache.MedicineKey(id)); err != nil {
		log.Printf("cache delete medicine %s: %v", id, err)
	}
}

func checkPrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return apperr.New(apperr.Validation, "Price cannot be negative")
	}
	return nil
}

func checkStock(n int) error {
	if n < 0 {
		return apperr.New(apperr.Validation, "Stock cannot be negative")
	}
	return nil
}
