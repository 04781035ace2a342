package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyUsesOrderID(t *testing.T) {
	placed := NewOrderEvent(OrderPlaced)
	placed.OrderID = 7
	placed.OID = "AbCdE12345"

	deleted := NewOrderEvent(OrderDeleted)
	deleted.OrderID = 7

	assert.Equal(t, "7", placed.Key())
	assert.Equal(t, placed.Key(), deleted.Key())

	orphan := NewOrderEvent(OrderStatusChanged)
	assert.Equal(t, orphan.EventID, orphan.Key())
}
