package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Oid    string `gorm:"size:10;uniqueIndex;not null" json:"oid"`

	// Contact and delivery details copied from the customer at checkout.
	Name    string `gorm:"size:100" json:"name"`
	Number  string `gorm:"size:20" json:"number"`
	Email   string `gorm:"size:100" json:"email"`
	Method  string `gorm:"size:50" json:"method"`
	Address string `gorm:"size:500" json:"address"`

	TotalProducts int             `json:"total_products"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`

	PlacedOn      time.Time `gorm:"index" json:"placed_on"`
	PaymentStatus string    `gorm:"size:30;default:'pending';index" json:"payment_status"`
}

// OrderItem carries no price; readers join products on name.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"not null;index" json:"order_id"`
	ProductName string `gorm:"size:100" json:"product_name"`
	Quantity    int    `json:"quantity"`
}
