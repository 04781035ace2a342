package audit_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/audit"
	"github.com/BruksfildServices01/food-storefront/internal/db/dbtest"
	"github.com/BruksfildServices01/food-storefront/internal/events"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

type MockPublisher struct {
	mu        sync.Mutex
	published []events.OrderEvent
	PublishFn func(ctx context.Context, e events.OrderEvent) error
}

func (m *MockPublisher) PublishOrder(ctx context.Context, e events.OrderEvent) error {
	m.mu.Lock()
	m.published = append(m.published, e)
	m.mu.Unlock()

	if m.PublishFn != nil {
		return m.PublishFn(ctx, e)
	}
	return nil
}

func (m *MockPublisher) Close() error { return nil }

func TestDispatcherWritesAndPublishes(t *testing.T) {
	gw := dbtest.Open(t)
	pub := &MockPublisher{}
	d := audit.NewDispatcher(audit.New(gw), pub, zap.NewNop())

	userID := uint(3)
	placed := events.NewOrderEvent(events.OrderPlaced)
	placed.OID = "AbCdE12345"

	d.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "order_placed",
		Entity:   "order",
		EntityID: "AbCdE12345",
		Metadata: map[string]any{"total_products": 3},
		Order:    &placed,
	})
	d.Dispatch(audit.Event{Action: "product_deleted", Entity: "product", EntityID: "9"})

	require.NoError(t, d.Close(context.Background()))

	var logs []models.AuditLog
	require.NoError(t, gw.Conn(context.Background()).Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "order_placed", logs[0].Action)
	assert.JSONEq(t, `{"total_products":3}`, logs[0].Metadata)
	assert.Equal(t, uint(3), *logs[0].UserID)
	assert.Nil(t, logs[1].UserID)

	require.Len(t, pub.published, 1)
	assert.Equal(t, "AbCdE12345", pub.published[0].OID)
	assert.NotEmpty(t, pub.published[0].EventID)
}

func TestDispatchAfterCloseIsIgnored(t *testing.T) {
	gw := dbtest.Open(t)
	d := audit.NewDispatcher(audit.New(gw), nil, zap.NewNop())

	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Dispatch(audit.Event{Action: "late"})
	})
}
