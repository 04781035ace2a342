package catalog

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/audit"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/catalog"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

const (
	MsgProductAdded   = "Product added successfully!"
	MsgProductUpdated = "Product updated successfully!"
	MsgProductDeleted = "Product deleted successfully!"
)

type ProductInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	StockStatus string          `json:"stock_status"`
}

func (in ProductInput) normalized() (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" || in.Price.IsNegative() {
		return in, domain.ErrInvalidProduct
	}
	if in.StockStatus == "" {
		in.StockStatus = models.StockIn
	}
	in.Image = imageRef(in.Image)
	return in, nil
}

// imageRef keeps only the file name of an image reference.
func imageRef(image string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return ""
	}
	return path.Base(strings.ReplaceAll(image, "\\", "/"))
}

// ======================================================
// CREATE
// ======================================================

type CreateProduct struct {
	repo  domain.Repository
	cache Cache
	audit *audit.Dispatcher
}

func NewCreateProduct(repo domain.Repository, cache Cache, audit *audit.Dispatcher) *CreateProduct {
	return &CreateProduct{repo: repo, cache: cache, audit: audit}
}

func (uc *CreateProduct) Execute(ctx context.Context, actor access.Actor, in ProductInput) (*models.Product, error) {
	if err := actor.Require(access.CreateProducts); err != nil {
		return nil, err
	}

	in, err := in.normalized()
	if err != nil {
		return nil, err
	}

	taken, err := uc.repo.NameTaken(ctx, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateName
	}

	p := &models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		StockStatus: in.StockStatus,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		if db.IsConflict(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	uc.audit.Dispatch(productEvent(actor, "product_created", p.ID))
	return p, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateProduct struct {
	repo  domain.Repository
	cache Cache
	audit *audit.Dispatcher
}

func NewUpdateProduct(repo domain.Repository, cache Cache, audit *audit.Dispatcher) *UpdateProduct {
	return &UpdateProduct{repo: repo, cache: cache, audit: audit}
}

// Execute overwrites name, price, category and stock status. The image
// is replaced only when the input carries one.
func (uc *UpdateProduct) Execute(ctx context.Context, actor access.Actor, id uint, in ProductInput) error {
	if err := actor.Require(access.EditProducts); err != nil {
		return err
	}

	in, err := in.normalized()
	if err != nil {
		return err
	}

	taken, err := uc.repo.NameTaken(ctx, in.Name, id)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateName
	}

	fields := map[string]any{
		"name":         in.Name,
		"price":        in.Price,
		"category":     in.Category,
		"stock_status": in.StockStatus,
	}
	if in.Image != "" {
		fields["image"] = in.Image
	}

	ok, err := uc.repo.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}

	uc.cache.Invalidate(ctx)
	uc.audit.Dispatch(productEvent(actor, "product_updated", id))
	return nil
}

// ======================================================
// DELETE / STOCK
// ======================================================

type DeleteProduct struct {
	repo  domain.Repository
	cache Cache
	audit *audit.Dispatcher
}

func NewDeleteProduct(repo domain.Repository, cache Cache, audit *audit.Dispatcher) *DeleteProduct {
	return &DeleteProduct{repo: repo, cache: cache, audit: audit}
}

func (uc *DeleteProduct) Execute(ctx context.Context, actor access.Actor, id uint) error {
	if err := actor.Require(access.DeleteProducts); err != nil {
		return err
	}

	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}

	uc.cache.Invalidate(ctx)
	uc.audit.Dispatch(productEvent(actor, "product_deleted", id))
	return nil
}

type ToggleStock struct {
	repo  domain.Repository
	cache Cache
	audit *audit.Dispatcher
}

func NewToggleStock(repo domain.Repository, cache Cache, audit *audit.Dispatcher) *ToggleStock {
	return &ToggleStock{repo: repo, cache: cache, audit: audit}
}

// Execute flips the stock status and returns the user-facing message.
func (uc *ToggleStock) Execute(ctx context.Context, actor access.Actor, id uint) (string, error) {
	if err := actor.Require(access.ToggleStock); err != nil {
		return "", err
	}

	p, err := uc.repo.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return "", domain.ErrProductNotFound
		}
		return "", err
	}

	next := domain.NextStockStatus(p.StockStatus)
	if _, err := uc.repo.Update(ctx, id, map[string]any{"stock_status": next}); err != nil {
		return "", err
	}

	uc.cache.Invalidate(ctx)
	uc.audit.Dispatch(productEvent(actor, "product_stock_toggled", id))
	return "Stock status changed to '" + next + "'!", nil
}

func productEvent(actor access.Actor, action string, id uint) audit.Event {
	return audit.Event{
		UserID:   &actor.UserID,
		Action:   action,
		Entity:   "product",
		EntityID: strconv.FormatUint(uint64(id), 10),
	}
}
