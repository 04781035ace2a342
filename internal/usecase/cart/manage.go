package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/cart"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

const (
	MsgQuantityUpdated = "Quantity updated!"
	MsgRemoved         = "Item removed!"
	MsgCleared         = "Cart cleared!"
)

// ======================================================
// VIEW
// ======================================================

type View struct {
	Items []models.CartItem `json:"cart"`
	Total decimal.Decimal   `json:"total"`
}

type GetCart struct {
	carts domain.Repository
}

func NewGetCart(carts domain.Repository) *GetCart {
	return &GetCart{carts: carts}
}

func (uc *GetCart) Execute(ctx context.Context, actor access.Actor, userID uint) (*View, error) {
	if err := actor.RequireOwner(access.OwnCart, userID); err != nil {
		return nil, err
	}

	items, err := uc.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}

	return &View{Items: items, Total: domain.Total(items)}, nil
}

// ======================================================
// ROW OPERATIONS
// ======================================================

type SetQuantity struct {
	carts domain.Repository
}

func NewSetQuantity(carts domain.Repository) *SetQuantity {
	return &SetQuantity{carts: carts}
}

func (uc *SetQuantity) Execute(ctx context.Context, actor access.Actor, cartID uint, quantity int) error {
	if err := domain.ValidateQuantity(quantity); err != nil {
		return err
	}
	if _, err := ownedRow(ctx, uc.carts, actor, cartID); err != nil {
		return err
	}

	ok, err := uc.carts.SetQuantity(ctx, cartID, quantity)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCartItemNotFound
	}
	return nil
}

type RemoveItem struct {
	carts domain.Repository
}

func NewRemoveItem(carts domain.Repository) *RemoveItem {
	return &RemoveItem{carts: carts}
}

func (uc *RemoveItem) Execute(ctx context.Context, actor access.Actor, cartID uint) error {
	if _, err := ownedRow(ctx, uc.carts, actor, cartID); err != nil {
		return err
	}

	ok, err := uc.carts.Delete(ctx, cartID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCartItemNotFound
	}
	return nil
}

type ClearCart struct {
	carts domain.Repository
}

func NewClearCart(carts domain.Repository) *ClearCart {
	return &ClearCart{carts: carts}
}

// Execute succeeds on an already empty cart.
func (uc *ClearCart) Execute(ctx context.Context, actor access.Actor, userID uint) error {
	if err := actor.RequireOwner(access.OwnCart, userID); err != nil {
		return err
	}
	_, err := uc.carts.Clear(ctx, userID)
	return err
}

func ownedRow(ctx context.Context, carts domain.Repository, actor access.Actor, cartID uint) (*models.CartItem, error) {
	row, err := carts.Get(ctx, cartID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, err
	}
	if err := actor.RequireOwner(access.OwnCart, row.UserID); err != nil {
		return nil, err
	}
	return row, nil
}
