package order

import (
	"context"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/order"
)

// GetOrderItems lists an order's lines at current product prices. Lines
// whose product was renamed or removed are not returned.
type GetOrderItems struct {
	repo domain.Repository
}

func NewGetOrderItems(repo domain.Repository) *GetOrderItems {
	return &GetOrderItems{repo: repo}
}

func (uc *GetOrderItems) Execute(
	ctx context.Context,
	actor access.Actor,
	orderID uint,
) ([]domain.Item, error) {

	o, err := uc.repo.Get(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	if actor.Require(access.ListOrders) != nil {
		if err := actor.RequireOwner(access.OwnOrders, o.UserID); err != nil {
			return nil, err
		}
	}

	return uc.repo.Items(ctx, orderID)
}
