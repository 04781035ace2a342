package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/cache"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	"github.com/BruksfildServices01/food-storefront/internal/db/dbtest"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/catalog"
	"github.com/BruksfildServices01/food-storefront/internal/infra/repository"
	"github.com/BruksfildServices01/food-storefront/internal/models"
	ucCatalog "github.com/BruksfildServices01/food-storefront/internal/usecase/catalog"
)

var (
	admin  = access.Actor{UserID: 1, Role: access.RoleAdmin}
	staff  = access.Actor{UserID: 2, Role: access.RoleStaff}
	client = access.Actor{UserID: 3, Role: access.RoleClient}
)

type fixture struct {
	gw    *db.Gateway
	repo  *repository.CatalogGormRepository
	cache ucCatalog.Cache
}

func newFixture(t *testing.T, withRedis bool) *fixture {
	t.Helper()
	gw := dbtest.Open(t)

	var c ucCatalog.Cache = cache.Noop{}
	if withRedis {
		mr := miniredis.RunT(t)
		client, err := cache.NewRedisClient(mr.Addr(), "", 0, zap.NewNop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		c = cache.NewCatalogCache(client, time.Minute, zap.NewNop())
	}

	return &fixture{gw: gw, repo: repository.NewCatalogGormRepository(gw), cache: c}
}

func (f *fixture) product(t *testing.T, name, category string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: decimal.NewFromInt(50), Category: category, StockStatus: models.StockIn}
	require.NoError(t, f.gw.Create(context.Background(), p))
	return p
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

// ======================================================
// READS
// ======================================================

func TestListIsCachedUntilWrite(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	list := ucCatalog.NewListProducts(f.repo, f.cache)
	create := ucCatalog.NewCreateProduct(f.repo, f.cache, nil)

	fries := f.product(t, "Fries", "Affordable")

	got, err := list.Execute(ctx, "newest", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fries"}, names(got))
	assert.True(t, decimal.NewFromInt(50).Equal(got[0].Price))

	_, err = f.repo.Delete(ctx, fries.ID)
	require.NoError(t, err)

	got, err = list.Execute(ctx, "newest", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fries"}, names(got), "served from cache")

	_, err = create.Execute(ctx, admin, ucCatalog.ProductInput{Name: "Burger", Price: decimal.NewFromInt(120), Category: "Best seller"})
	require.NoError(t, err)

	got, err = list.Execute(ctx, "newest", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Burger"}, names(got))
}

func TestCategoriesAndByCategory(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	f.product(t, "Fries", "Affordable")
	f.product(t, "Burger", "Best seller")
	f.product(t, "Combo A", "Combo meal")

	cats, err := ucCatalog.NewListCategories(f.repo, f.cache).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Affordable", "Best seller", "Combo meal"}, cats)

	list := ucCatalog.NewListProducts(f.repo, f.cache)
	byCat := ucCatalog.NewProductsByCategory(f.repo, list)

	got, err := byCat.Execute(ctx, "Best seller")
	require.NoError(t, err)
	assert.Equal(t, []string{"Burger"}, names(got))

	got, err = byCat.Execute(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fries", "Burger", "Combo A"}, names(got))

	got, err = byCat.Execute(ctx, "Desserts")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetProductNotFound(t *testing.T) {
	f := newFixture(t, false)

	_, err := ucCatalog.NewGetProduct(f.repo).Execute(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ======================================================
// WRITES
// ======================================================

func TestCreateProduct(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	create := ucCatalog.NewCreateProduct(f.repo, f.cache, nil)

	p, err := create.Execute(ctx, admin, ucCatalog.ProductInput{
		Name:     "  Fries ",
		Price:    decimal.NewFromInt(50),
		Category: "Affordable",
		Image:    "uploads/2024/fries.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fries", p.Name)
	assert.Equal(t, "fries.png", p.Image)
	assert.Equal(t, models.StockIn, p.StockStatus)

	_, err = create.Execute(ctx, admin, ucCatalog.ProductInput{Name: "Fries", Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = create.Execute(ctx, admin, ucCatalog.ProductInput{Name: "Bad", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	_, err = create.Execute(ctx, staff, ucCatalog.ProductInput{Name: "Soda", Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestUpdateProductKeepsImageWhenNoneGiven(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	update := ucCatalog.NewUpdateProduct(f.repo, f.cache, nil)

	fries := f.product(t, "Fries", "Affordable")
	require.NoError(t, f.gw.Conn(ctx).Model(fries).Update("image", "fries.png").Error)
	f.product(t, "Burger", "Best seller")

	err := update.Execute(ctx, staff, fries.ID, ucCatalog.ProductInput{
		Name:        "Large Fries",
		Price:       decimal.NewFromInt(65),
		Category:    "Affordable",
		StockStatus: models.StockOut,
	})
	require.NoError(t, err)

	got, err := f.repo.Get(ctx, fries.ID)
	require.NoError(t, err)
	assert.Equal(t, "Large Fries", got.Name)
	assert.Equal(t, "fries.png", got.Image)
	assert.Equal(t, models.StockOut, got.StockStatus)
	assert.True(t, decimal.NewFromInt(65).Equal(got.Price))

	err = update.Execute(ctx, staff, fries.ID, ucCatalog.ProductInput{Name: "Burger", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	err = update.Execute(ctx, staff, 9999, ucCatalog.ProductInput{Name: "Ghost", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = update.Execute(ctx, client, fries.ID, ucCatalog.ProductInput{Name: "Mine", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestToggleStockAndDelete(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	toggle := ucCatalog.NewToggleStock(f.repo, f.cache, nil)
	del := ucCatalog.NewDeleteProduct(f.repo, f.cache, nil)

	fries := f.product(t, "Fries", "Affordable")

	msg, err := toggle.Execute(ctx, staff, fries.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stock status changed to 'Out of stock'!", msg)

	msg, err = toggle.Execute(ctx, staff, fries.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stock status changed to 'In stock'!", msg)

	assert.ErrorIs(t, del.Execute(ctx, staff, fries.ID), access.ErrForbidden)
	require.NoError(t, del.Execute(ctx, admin, fries.ID))
	assert.ErrorIs(t, del.Execute(ctx, admin, fries.ID), domain.ErrProductNotFound)

	_, err = toggle.Execute(ctx, staff, fries.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
