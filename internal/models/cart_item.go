package models

import "github.com/shopspring/decimal"

// CartItem keeps a snapshot of the product name, price and image taken
// when the product was first added.
type CartItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	Pid    uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"pid"`

	Name     string          `gorm:"size:100" json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Image    string          `gorm:"size:255" json:"image"`
}

func (CartItem) TableName() string {
	return "cart"
}

func (c CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
