package models

import "github.com/shopspring/decimal"

// Category is the categories table.
type Category struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

// Medicine is the medicines table. Stock and price never go negative.
type Medicine struct {
	Base
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Image       string          `json:"image,omitempty"` // URL or relative path
	CategoryID  string          `gorm:"index;not null;type:varchar(36)" json:"categoryId"`
	SellerID    string          `gorm:"index;not null;type:varchar(36)" json:"sellerId"`

	Category *Category `json:"category,omitempty"`
	Seller   *User     `json:"seller,omitempty"`
}

// Review is the reviews table. A customer may review a medicine more than once.
type Review struct {
	Base
	MedicineID string `gorm:"index;not null;type:varchar(36)" json:"medicineId"`
	CustomerID string `gorm:"index;not null;type:varchar(36)" json:"customerId"`
	Rating     int    `gorm:"not null" json:"rating"`
	Comment    string `gorm:"type:text" json:"comment,omitempty"`
}
