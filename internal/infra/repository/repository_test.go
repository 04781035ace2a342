package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/food-storefront/internal/db"
	"github.com/BruksfildServices01/food-storefront/internal/db/dbtest"
	domainCatalog "github.com/BruksfildServices01/food-storefront/internal/domain/catalog"
	domainOrder "github.com/BruksfildServices01/food-storefront/internal/domain/order"
	"github.com/BruksfildServices01/food-storefront/internal/infra/repository"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

func seedUser(t *testing.T, gw *db.Gateway, name string) *models.User {
	t.Helper()
	u := &models.User{
		Name:     name,
		Fname:    "Ana",
		Lname:    "Reyes",
		Email:    name + "@example.com",
		Password: "x",
		UserType: "client",
	}
	require.NoError(t, gw.Create(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, gw *db.Gateway, name, price, category string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Category:    category,
		StockStatus: models.StockIn,
	}
	require.NoError(t, gw.Create(context.Background(), p))
	return p
}

func seedOrder(t *testing.T, gw *db.Gateway, userID uint, oid, status string, placed time.Time, items ...models.OrderItem) *models.Order {
	t.Helper()
	o := &models.Order{
		UserID:        userID,
		Oid:           oid,
		Name:          "Ana Reyes",
		Email:         "ana@example.com",
		TotalPrice:    decimal.NewFromInt(10),
		PlacedOn:      placed,
		PaymentStatus: status,
	}
	repo := repository.NewOrderGormRepository(gw)
	require.NoError(t, repo.Create(context.Background(), o, items))
	return o
}

// ======================================================
// CART
// ======================================================

func TestCartUniquePerUserAndProduct(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewCartGormRepository(gw)

	u := seedUser(t, gw, "ana")
	p := seedProduct(t, gw, "Fries", "50", "Affordable")

	require.NoError(t, repo.Create(ctx, &models.CartItem{UserID: u.ID, Pid: p.ID, Name: p.Name, Price: p.Price, Quantity: 1}))

	err := repo.Create(ctx, &models.CartItem{UserID: u.ID, Pid: p.ID, Name: p.Name, Price: p.Price, Quantity: 1})
	require.Error(t, err)
	assert.True(t, db.IsConflict(err))

	row, err := repo.Find(ctx, u.ID, p.ID)
	require.NoError(t, err)

	ok, err := repo.SetQuantity(ctx, row.ID, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	items, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	n, err := repo.Clear(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Find(ctx, u.ID, p.ID)
	assert.True(t, db.IsNotFound(err))
}

func TestCartAddQuantityIncrementsInPlace(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewCartGormRepository(gw)

	u := seedUser(t, gw, "ana")
	p := seedProduct(t, gw, "Fries", "50", "Affordable")

	ok, err := repo.AddQuantity(ctx, u.ID, p.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Create(ctx, &models.CartItem{UserID: u.ID, Pid: p.ID, Name: p.Name, Price: p.Price, Quantity: 1}))

	ok, err = repo.AddQuantity(ctx, u.ID, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	row, err := repo.Find(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, row.Quantity)
}

// ======================================================
// CATALOG
// ======================================================

func TestCatalogListingAndCategories(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewCatalogGormRepository(gw)

	seedProduct(t, gw, "Fries", "50", "Affordable")
	seedProduct(t, gw, "Burger", "60", "Best seller")
	seedProduct(t, gw, "Cheese Burger", "90", "Best seller")
	seedProduct(t, gw, "Ghost", "1", "")
	seedProduct(t, gw, "Legacy", "1", models.StockOut)

	got, err := repo.List(ctx, domainCatalog.ListQuery(domainCatalog.SortBestSeller, ""))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cheese Burger", got[0].Name)

	got, err = repo.List(ctx, domainCatalog.ListQuery(domainCatalog.SortOldest, "burger"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Burger", got[0].Name)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Affordable", "Best seller"}, cats)

	byCat, err := repo.ListByCategory(ctx, "Best seller")
	require.NoError(t, err)
	require.Len(t, byCat, 2)
	assert.Equal(t, "Burger", byCat[0].Name)
}

func TestCatalogNameTakenExcludesSelf(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewCatalogGormRepository(gw)

	p := seedProduct(t, gw, "Fries", "50", "Affordable")

	taken, err := repo.NameTaken(ctx, "Fries", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.NameTaken(ctx, "Fries", p.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	ok, err := repo.Update(ctx, 9999, map[string]any{"name": "Nope"})
	require.NoError(t, err)
	assert.False(t, ok)
}

// ======================================================
// ORDERS
// ======================================================

func TestOrderListFiltersAndSearch(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewOrderGormRepository(gw)

	ana := seedUser(t, gw, "ana")
	bob := seedUser(t, gw, "bob")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	seedOrder(t, gw, ana.ID, "AAAAAAAAA1", "confirmed", base)
	seedOrder(t, gw, ana.ID, "AAAAAAAAA2", "completed_confirmed", base.Add(time.Hour))
	seedOrder(t, gw, ana.ID, "AAAAAAAAA3", "pending", base.Add(2*time.Hour))
	seedOrder(t, gw, bob.ID, "BBBBBBBBB1", "confirmed", base.Add(3*time.Hour))

	got, err := repo.List(ctx, domainOrder.ListFilter{
		UserID:   ana.ID,
		Statuses: domainOrder.FilterStatuses("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AAAAAAAAA1", got[0].Oid)
	assert.Equal(t, "AAAAAAAAA2", got[1].Oid)
	assert.Equal(t, "ana", got[0].UserName)
	assert.Contains(t, got[0].FullName, "Reyes")

	got, err = repo.List(ctx, domainOrder.ListFilter{Search: "bbbbb", Desc: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, bob.ID, got[0].UserID)

	got, err = repo.List(ctx, domainOrder.ListFilter{Desc: true})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "BBBBBBBBB1", got[0].Oid)
}

func TestOrderItemsUseCurrentPrices(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewOrderGormRepository(gw)

	u := seedUser(t, gw, "ana")
	fries := seedProduct(t, gw, "Fries", "50", "Affordable")
	seedProduct(t, gw, "Burger", "60", "Best seller")

	o := seedOrder(t, gw, u.ID, "AAAAAAAAA1", "pending", time.Now(),
		models.OrderItem{ProductName: "Fries", Quantity: 2},
		models.OrderItem{ProductName: "Burger", Quantity: 1},
		models.OrderItem{ProductName: "Retired", Quantity: 1},
	)

	_, err := repository.NewCatalogGormRepository(gw).Update(ctx, fries.ID, map[string]any{"price": decimal.NewFromInt(55)})
	require.NoError(t, err)

	items, err := repo.Items(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Fries", items[0].ProductName)
	assert.True(t, decimal.NewFromInt(55).Equal(items[0].Price))
	assert.Equal(t, 1, items[1].Quantity)
}

func TestOrderApplyTransitionDependsOnCurrentStatus(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewOrderGormRepository(gw)

	u := seedUser(t, gw, "ana")
	delivered := seedOrder(t, gw, u.ID, "DDDDDDDDD1", "delivered", time.Now())
	pending := seedOrder(t, gw, u.ID, "PPPPPPPPP1", "pending", time.Now())

	confirm, err := domainOrder.TransitionFor(domainOrder.ActionConfirm)
	require.NoError(t, err)

	o, err := repo.ApplyTransition(ctx, delivered.Oid, u.ID, confirm)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, delivered.ID, o.ID)
	assert.Equal(t, "completed_confirmed", o.PaymentStatus)

	o, err = repo.ApplyTransition(ctx, pending.Oid, u.ID, confirm)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "confirmed", o.PaymentStatus)

	got, err := repo.Get(ctx, delivered.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed_confirmed", got.PaymentStatus)

	got, err = repo.Get(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.PaymentStatus)

	o, err = repo.ApplyTransition(ctx, pending.Oid, u.ID+1, confirm)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestOrderDeleteRemovesItems(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewOrderGormRepository(gw)

	u := seedUser(t, gw, "ana")
	o := seedOrder(t, gw, u.ID, "AAAAAAAAA1", "pending", time.Now(),
		models.OrderItem{ProductName: "Fries", Quantity: 2},
	)

	ok, err := repo.Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	rows, err := gw.Query(ctx, "SELECT COUNT(*) AS n FROM order_items")
	require.NoError(t, err)
	assert.Zero(t, rows[0].Int64("n"))

	ok, err = repo.Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// ======================================================
// USERS
// ======================================================

func TestUserDeleteCascades(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	users := repository.NewUserGormRepository(gw)

	ana := seedUser(t, gw, "ana")
	bob := seedUser(t, gw, "bob")
	p := seedProduct(t, gw, "Fries", "50", "Affordable")

	for i, oid := range []string{"AAAAAAAAA1", "AAAAAAAAA2", "AAAAAAAAA3"} {
		seedOrder(t, gw, ana.ID, oid, "pending", time.Now().Add(time.Duration(i)*time.Minute),
			models.OrderItem{ProductName: "Fries", Quantity: 1},
		)
	}
	seedOrder(t, gw, bob.ID, "BBBBBBBBB1", "pending", time.Now(),
		models.OrderItem{ProductName: "Fries", Quantity: 1},
	)
	require.NoError(t, gw.Create(ctx, &models.CartItem{UserID: ana.ID, Pid: p.ID, Name: "Fries", Price: p.Price, Quantity: 1}))
	require.NoError(t, gw.Create(ctx, &models.CartItem{UserID: bob.ID, Pid: p.ID, Name: "Fries", Price: p.Price, Quantity: 2}))

	ok, err := users.Delete(ctx, ana.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	count := func(stmt string, args ...any) int64 {
		rows, err := gw.Query(ctx, stmt, args...)
		require.NoError(t, err)
		return rows[0].Int64("n")
	}

	assert.Zero(t, count("SELECT COUNT(*) AS n FROM orders WHERE user_id = ?", ana.ID))
	assert.Zero(t, count("SELECT COUNT(*) AS n FROM cart WHERE user_id = ?", ana.ID))
	assert.Zero(t, count("SELECT COUNT(*) AS n FROM users WHERE id = ?", ana.ID))
	assert.Equal(t, int64(1), count("SELECT COUNT(*) AS n FROM order_items"))
	assert.Equal(t, int64(1), count("SELECT COUNT(*) AS n FROM orders"))
	assert.Equal(t, int64(1), count("SELECT COUNT(*) AS n FROM cart"))

	_, err = users.Get(ctx, ana.ID)
	assert.True(t, db.IsNotFound(err))
}

func TestUserFindClashingAndList(t *testing.T) {
	gw := dbtest.Open(t)
	ctx := context.Background()
	users := repository.NewUserGormRepository(gw)

	ana := seedUser(t, gw, "ana")
	staff := &models.User{Name: "sam", Email: "sam@example.com", Password: "x", UserType: "staff", Number: "555"}
	require.NoError(t, gw.Create(ctx, staff))

	clash, err := users.FindClashing(ctx, "new", "new@example.com", "555", 0)
	require.NoError(t, err)
	require.Len(t, clash, 1)
	assert.Equal(t, staff.ID, clash[0].ID)

	clash, err = users.FindClashing(ctx, "ana", "ana@example.com", "", ana.ID)
	require.NoError(t, err)
	assert.Empty(t, clash)

	list, err := users.List(ctx, "staff", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "sam", list[0].Name)

	list, err = users.List(ctx, "all", "name_desc")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "sam", list[0].Name)
}
