package order_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/audit"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/order"
	"github.com/BruksfildServices01/food-storefront/internal/events"
	"github.com/BruksfildServices01/food-storefront/internal/infra/repository"
	ucOrder "github.com/BruksfildServices01/food-storefront/internal/usecase/order"
)

type MockPublisher struct {
	mu        sync.Mutex
	published []events.OrderEvent
}

func (m *MockPublisher) PublishOrder(_ context.Context, e events.OrderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, e)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

func (m *MockPublisher) Events() []events.OrderEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.OrderEvent(nil), m.published...)
}

// failingClearCarts breaks the last step of checkout.
type failingClearCarts struct {
	*repository.CartGormRepository
}

var errClearFailed = errors.New("clear failed")

func (failingClearCarts) Clear(context.Context, uint) (int64, error) {
	return 0, errClearFailed
}

func TestOrderEventsShareOneKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pub := &MockPublisher{}
	d := audit.NewDispatcher(audit.New(f.gw), pub, zap.NewNop())

	create := ucOrder.NewCreateOrder(f.gw, f.orders, f.carts, f.users, d, func() time.Time { return placedAt })
	update := ucOrder.NewUpdateOrderStatus(f.orders, d)
	set := ucOrder.NewSetOrderStatus(f.orders, d)
	del := ucOrder.NewDeleteOrder(f.orders, d)
	admin := access.Actor{UserID: 1, Role: access.RoleAdmin}

	res, err := create.Execute(ctx, f.actor, ucOrder.CreateOrderInput{UserID: f.user.ID, Items: friesAndBurger()})
	require.NoError(t, err)

	require.NoError(t, update.Execute(ctx, f.actor, res.OID, f.user.ID, domain.ActionConfirm))
	require.NoError(t, set.Execute(ctx, admin, res.OrderID, "completed"))
	require.NoError(t, update.Execute(ctx, f.actor, res.OID, f.user.ID, domain.ActionConfirm))
	require.NoError(t, del.Execute(ctx, admin, res.OrderID))

	require.NoError(t, d.Close(ctx))

	got := pub.Events()
	require.Len(t, got, 5)

	key := strconv.FormatUint(uint64(res.OrderID), 10)
	for i, e := range got {
		assert.Equal(t, key, e.Key(), "event %d (%s)", i, e.Type)
		assert.Equal(t, res.OrderID, e.OrderID)
	}

	statuses := make([]string, 0, 4)
	for _, e := range got[:4] {
		statuses = append(statuses, e.Status)
	}
	assert.Equal(t, []string{"pending", "confirmed", "delivered", "completed_confirmed"}, statuses)
	assert.Equal(t, res.OID, got[1].OID)
	assert.Equal(t, events.OrderDeleted, got[4].Type)
}

func TestCreateOrderRollsBackWhenCartClearFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t)

	create := ucOrder.NewCreateOrder(f.gw, f.orders, failingClearCarts{f.carts}, f.users, nil, func() time.Time { return placedAt })

	_, err := create.Execute(ctx, f.actor, ucOrder.CreateOrderInput{UserID: f.user.ID, Items: friesAndBurger()})
	require.ErrorIs(t, err, errClearFailed)

	rows, err := f.gw.Query(ctx, "SELECT (SELECT COUNT(*) FROM orders) AS orders, (SELECT COUNT(*) FROM order_items) AS items")
	require.NoError(t, err)
	assert.Zero(t, rows[0].Int64("orders"))
	assert.Zero(t, rows[0].Int64("items"))

	cart, err := f.carts.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, cart, 2)
}
