package catalog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/catalog"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

// Cache holds catalog reads between writes. Implementations swallow
// their own failures.
type Cache interface {
	Load(ctx context.Context, key string, dest any) bool
	Store(ctx context.Context, key string, value any)
	Invalidate(ctx context.Context)
}

// ======================================================
// LISTING
// ======================================================

type ListProducts struct {
	repo  domain.Repository
	cache Cache
}

func NewListProducts(repo domain.Repository, cache Cache) *ListProducts {
	return &ListProducts{repo: repo, cache: cache}
}

func (uc *ListProducts) Execute(ctx context.Context, sortBy, search string) ([]models.Product, error) {
	search = strings.TrimSpace(search)
	if sortBy == "" {
		sortBy = domain.SortAll
	}

	key := "list:" + sortBy + ":" + strings.ToLower(search)

	var out []models.Product
	if uc.cache.Load(ctx, key, &out) {
		return out, nil
	}

	out, err := uc.repo.List(ctx, domain.ListQuery(sortBy, search))
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Product{}
	}

	uc.cache.Store(ctx, key, out)
	return out, nil
}

type ListCategories struct {
	repo  domain.Repository
	cache Cache
}

func NewListCategories(repo domain.Repository, cache Cache) *ListCategories {
	return &ListCategories{repo: repo, cache: cache}
}

func (uc *ListCategories) Execute(ctx context.Context) ([]string, error) {
	const key = "categories"

	var out []string
	if uc.cache.Load(ctx, key, &out) {
		return out, nil
	}

	out, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}

	uc.cache.Store(ctx, key, out)
	return out, nil
}

// ProductsByCategory lists one category by name. "all" behaves like the
// storefront's default listing.
type ProductsByCategory struct {
	repo domain.Repository
	list *ListProducts
}

func NewProductsByCategory(repo domain.Repository, list *ListProducts) *ProductsByCategory {
	return &ProductsByCategory{repo: repo, list: list}
}

func (uc *ProductsByCategory) Execute(ctx context.Context, category string) ([]models.Product, error) {
	if category == domain.SortAll {
		return uc.list.Execute(ctx, domain.SortAll, "")
	}
	return uc.repo.ListByCategory(ctx, category)
}

type GetProduct struct {
	repo domain.Repository
}

func NewGetProduct(repo domain.Repository) *GetProduct {
	return &GetProduct{repo: repo}
}

func (uc *GetProduct) Execute(ctx context.Context, id uint) (*models.Product, error) {
	p, err := uc.repo.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}
