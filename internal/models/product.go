package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StockIn  = "In stock"
	StockOut = "Out of stock"
)

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category string          `gorm:"size:50;index" json:"category"`
	Image    string          `gorm:"size:255" json:"image"`

	StockStatus string `gorm:"size:20;default:'In stock'" json:"stock_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
