package catalog

import (
	"context"

	"github.com/BruksfildServices01/food-storefront/internal/httperr"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

const (
	SortAll        = "all"
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortAffordable = "affordable"
	SortBestSeller = "best_seller"
	SortComboMeal  = "combo_meal"

	orderNewest = "id DESC"
)

var sortCategories = map[string]string{
	SortAffordable: "Affordable",
	SortBestSeller: "Best seller",
	SortComboMeal:  "Combo meal",
}

// Query is a resolved product listing: optional category and name
// filters plus an ORDER BY clause.
type Query struct {
	Category string
	Search   string
	OrderBy  string
}

// ListQuery resolves a storefront sort key. Unknown keys list newest first.
func ListQuery(sortBy, search string) Query {
	q := Query{Search: search, OrderBy: orderNewest}

	switch sortBy {
	case SortAll:
		q.OrderBy = "category ASC, id DESC"
	case SortNewest:
		q.OrderBy = orderNewest
	case SortOldest:
		q.OrderBy = "id ASC"
	default:
		if cat, ok := sortCategories[sortBy]; ok {
			q.Category = cat
		}
	}
	return q
}

// NextStockStatus flips between in stock and out of stock.
func NextStockStatus(current string) string {
	if current == models.StockIn {
		return models.StockOut
	}
	return models.StockIn
}

var (
	ErrProductNotFound = httperr.NewBusiness("product_not_found", "Product not found!")
	ErrDuplicateName   = httperr.NewBusiness("product_name_taken", "Product name already exists!")
	ErrInvalidProduct  = httperr.NewBusiness("invalid_product", "Product name and a non-negative price are required!")
)

type Repository interface {
	List(ctx context.Context, q Query) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)

	// Categories excludes empty values and the out-of-stock marker.
	Categories(ctx context.Context) ([]string, error)

	Get(ctx context.Context, id uint) (*models.Product, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)

	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id uint, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}
