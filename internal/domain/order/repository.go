package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/food-storefront/internal/models"
)

// Summary is an order row plus the owning account's names.
type Summary struct {
	models.Order
	UserName string `json:"user_name"`
	FullName string `json:"full_name"`
}

// Item is an order line priced at the product's current price.
type Item struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type ListFilter struct {
	UserID   uint
	Statuses []Status
	Search   string
	Desc     bool
}

type Repository interface {
	OIDExists(ctx context.Context, oid string) (bool, error)

	Create(ctx context.Context, o *models.Order, items []models.OrderItem) error

	Get(ctx context.Context, orderID uint) (*models.Order, error)

	List(ctx context.Context, f ListFilter) ([]Summary, error)

	Items(ctx context.Context, orderID uint) ([]Item, error)

	// ApplyTransition returns the order as stored after the update, or
	// nil when no order matches oid and owner.
	ApplyTransition(
		ctx context.Context,
		oid string,
		userID uint,
		t Transition,
	) (*models.Order, error)

	SetStatus(ctx context.Context, orderID uint, s Status) (bool, error)

	// Delete removes the order lines and then the order.
	Delete(ctx context.Context, orderID uint) (bool, error)
}
