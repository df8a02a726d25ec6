package models

import "github.com/shopspring/decimal"

// Order is the orders table. TotalPrice is fixed at creation.
type Order struct {
	Base
	CustomerID      string          `gorm:"index;not null;type:varchar(36)" json:"customerId"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"totalPrice"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shippingAddress"`

	Items []OrderItem `json:"items"`
}

// OrderItem is one line of an order. Price is the unit price at order time.
type OrderItem struct {
	Base
	OrderID    string          `gorm:"index;not null;type:varchar(36)" json:"orderId"`
	Position   int             `gorm:"not null;default:0" json:"-"`
	MedicineID string          `gorm:"index;not null;type:varchar(36)" json:"medicineId"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`

	Medicine *Medicine `json:"medicine,omitempty"`
}

// Subtotal is Price × Quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// All lists every model for AutoMigrate, parents first.
func All() []any {
	return []any{&User{}, &Category{}, &Medicine{}, &Review{}, &Order{}, &OrderItem{}}
}
