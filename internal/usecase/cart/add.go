package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/cart"
	domainCatalog "github.com/BruksfildServices01/food-storefront/internal/domain/catalog"
	"github.com/BruksfildServices01/food-storefront/internal/models"
	"github.com/BruksfildServices01/food-storefront/internal/usecase"
)

const (
	MsgAdded   = "Added to cart!"
	MsgUpdated = "Cart updated!"
)

// Snapshot overrides the product details copied into a new cart row.
// Zero fields fall back to the stored product.
type Snapshot struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Image string           `json:"image"`
}

type AddItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
	Snapshot  *Snapshot
}

type AddItem struct {
	tx       usecase.Transactor
	carts    domain.Repository
	products domainCatalog.Repository
}

func NewAddItem(
	tx usecase.Transactor,
	carts domain.Repository,
	products domainCatalog.Repository,
) *AddItem {
	return &AddItem{tx: tx, carts: carts, products: products}
}

// Execute adds quantity to the user's row for the product, creating the
// row on first add. It returns the confirmation message.
func (uc *AddItem) Execute(ctx context.Context, actor access.Actor, in AddItemInput) (string, error) {
	if err := actor.RequireOwner(access.OwnCart, in.UserID); err != nil {
		return "", err
	}
	if err := domain.ValidateQuantity(in.Quantity); err != nil {
		return "", err
	}

	product, err := uc.products.Get(ctx, in.ProductID)
	if err != nil {
		if db.IsNotFound(err) {
			return "", domain.ErrProductNotFound
		}
		return "", err
	}

	var msg string
	merge := func(ctx context.Context) error {
		merged, err := uc.carts.AddQuantity(ctx, in.UserID, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if merged {
			msg = MsgUpdated
			return nil
		}

		msg = MsgAdded
		return uc.carts.Create(ctx, newRow(in, product))
	}

	err = uc.tx.Transaction(ctx, merge)
	if db.IsConflict(err) {
		// A concurrent add created the row first; merge into it.
		err = uc.tx.Transaction(ctx, merge)
	}
	if err != nil {
		return "", err
	}
	return msg, nil
}

func newRow(in AddItemInput, p *models.Product) *models.CartItem {
	row := &models.CartItem{
		UserID:   in.UserID,
		Pid:      p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: in.Quantity,
		Image:    p.Image,
	}

	if s := in.Snapshot; s != nil {
		if s.Name != "" {
			row.Name = s.Name
		}
		if s.Price != nil {
			row.Price = *s.Price
		}
		if s.Image != "" {
			row.Image = s.Image
		}
	}
	return row
}
