// Package order places customer orders against live catalog stock.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"medistore/internal/apperr"
	"medistore/internal/cache"
	"medistore/internal/events"
	"medistore/internal/models"
)

// Item is one requested line.
type Item struct {
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
}

// PlaceInput is a customer's checkout request.
type PlaceInput struct {
	CustomerID      string
	Items           []Item
	ShippingAddress string
}

// Placed is the payload of the order.placed event.
type Placed struct {
	OrderID    string          `json:"orderId"`
	CustomerID string          `json:"customerId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Items      []Item          `json:"items"`
}

// Service owns the orders and order_items tables and decrements medicine stock.
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

// Place validates the items against current stock, snapshots prices and
// writes the order together with the stock decrements in one transaction.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*models.Order, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var orderID string
	var demand []stockDemand
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, d, err := buildOrder(tx, in)
		if err != nil {
			return err
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		// Stock may have moved since the read above; the conditional update
		// is what keeps it from going negative.
		for _, dd := range d {
			res := tx.Model(&models.Medicine{}).
				Where("id = ? AND stock >= ?", dd.medicine.ID, dd.quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", dd.quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock of %s: %w", dd.medicine.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return insufficient(dd.medicine)
			}
		}
		orderID, demand = order.ID, d
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.Internal {
			return nil, err
		}
		return nil, apperr.Wrap(err, "Failed to place order")
	}

	keys := make([]string, 0, len(demand))
	for _, dd := range demand {
		keys = append(keys, cache.MedicineKey(dd.medicine.ID))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("order %s: invalidate cache: %v", orderID, err)
	}

	placed, err := s.Get(ctx, orderID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	events.PublishAsync(s.events, events.OrderPlaced, placed.ID, Placed{
		OrderID:    placed.ID,
		CustomerID: placed.CustomerID,
		TotalPrice: placed.TotalPrice,
		Items:      in.Items,
	})
	return placed, nil
}

// List returns the customer's orders, newest first.
func (s *Service) List(ctx context.Context, customerID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := withItems(s.db.WithContext(ctx)).
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch orders")
	}
	return orders, nil
}

// Get returns one of the customer's orders. Orders belonging to someone else
// are reported as not found.
func (s *Service) Get(ctx context.Context, orderID, customerID string) (*models.Order, error) {
	var o models.Order
	err := withItems(s.db.WithContext(ctx)).
		Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch order details")
	}
	return &o, nil
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Items.Medicine")
}

func validate(in PlaceInput) error {
	if len(in.Items) == 0 || strings.TrimSpace(in.ShippingAddress) == "" {
		return apperr.New(apperr.Validation, "Items and shipping address are required")
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.MedicineID) == "" {
			return apperr.New(apperr.Validation, "Every item needs a medicineId")
		}
		if it.Quantity < 1 {
			return apperr.New(apperr.Validation, "Quantity for medicine %s must be at least 1", it.MedicineID)
		}
	}
	return nil
}
