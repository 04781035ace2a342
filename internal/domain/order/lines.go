package order

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/food-storefront/internal/httperr"
)

// Line is one cart entry submitted at checkout.
type Line struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

var (
	ErrEmptyOrder      = httperr.NewBusiness("empty_order", "Your cart is empty!")
	ErrInvalidLine     = httperr.NewBusiness("invalid_order_item", "Invalid order item!")
	ErrOrderNotFound   = httperr.NewBusiness("order_not_found", "Order not found!")
	ErrOIDUnavailable  = httperr.NewBusiness("oid_unavailable", "Failed to create order!")
	ErrMissingCustomer = httperr.NewBusiness("missing_customer", "Customer details are required!")
)

func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	for _, l := range lines {
		if strings.TrimSpace(l.Name) == "" || l.Quantity <= 0 || l.Price.IsNegative() {
			return ErrInvalidLine
		}
	}
	return nil
}

// Totals returns the item count and the sum of price * quantity.
func Totals(lines []Line) (int, decimal.Decimal) {
	products := 0
	price := decimal.Zero
	for _, l := range lines {
		products += l.Quantity
		price = price.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return products, price
}
