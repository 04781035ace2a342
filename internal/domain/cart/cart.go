package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/food-storefront/internal/httperr"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

var (
	ErrInvalidQuantity  = httperr.NewBusiness("invalid_quantity", "Quantity must be at least 1!")
	ErrProductNotFound  = httperr.NewBusiness("product_not_found", "Product not found!")
	ErrCartItemNotFound = httperr.NewBusiness("cart_item_not_found", "Cart item not found!")
)

func ValidateQuantity(q int) error {
	if q <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Total is the sum of price * quantity over the given rows.
func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

type Repository interface {
	// Find returns a wrapped db.ErrNotFound when the user has no row
	// for the product.
	Find(ctx context.Context, userID, productID uint) (*models.CartItem, error)
	Get(ctx context.Context, id uint) (*models.CartItem, error)

	Create(ctx context.Context, item *models.CartItem) error
	SetQuantity(ctx context.Context, id uint, quantity int) (bool, error)

	// AddQuantity increments the user's row for the product in a single
	// statement and reports false when there is no such row.
	AddQuantity(ctx context.Context, userID, productID uint, delta int) (bool, error)

	// ListByUser returns rows in insertion order.
	ListByUser(ctx context.Context, userID uint) ([]models.CartItem, error)

	Delete(ctx context.Context, id uint) (bool, error)
	Clear(ctx context.Context, userID uint) (int64, error)
}
