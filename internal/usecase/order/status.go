package order

import (
	"context"
	"strconv"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/audit"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/order"
	"github.com/BruksfildServices01/food-storefront/internal/events"
)

const (
	MsgStatusUpdated      = "Order status updated!"
	MsgStaffStatusUpdated = "Order status updated successfully!"
)

// ======================================================
// CLIENT ACTIONS
// ======================================================

type UpdateOrderStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateOrderStatus(repo domain.Repository, audit *audit.Dispatcher) *UpdateOrderStatus {
	return &UpdateOrderStatus{repo: repo, audit: audit}
}

// Execute applies cancel, confirm or confirm_delivery to the order with
// the given public id owned by userID.
func (uc *UpdateOrderStatus) Execute(
	ctx context.Context,
	actor access.Actor,
	oid string,
	userID uint,
	action string,
) error {

	if err := actor.RequireOwner(access.OwnOrders, userID); err != nil {
		return err
	}

	t, err := domain.TransitionFor(action)
	if err != nil {
		return err
	}

	o, err := uc.repo.ApplyTransition(ctx, oid, userID, t)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrOrderNotFound
	}

	ev := events.NewOrderEvent(events.OrderStatusChanged)
	ev.OrderID = o.ID
	ev.OID = o.Oid
	ev.UserID = o.UserID
	ev.Status = o.PaymentStatus

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "order_" + action,
		Entity:   "order",
		EntityID: oid,
		Metadata: map[string]any{"status": o.PaymentStatus},
		Order:    &ev,
	})
	return nil
}

// ======================================================
// BACK OFFICE
// ======================================================

type SetOrderStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetOrderStatus(repo domain.Repository, audit *audit.Dispatcher) *SetOrderStatus {
	return &SetOrderStatus{repo: repo, audit: audit}
}

// Execute stores status on the order, after mapping "completed" to
// delivered. Other values are stored verbatim.
func (uc *SetOrderStatus) Execute(
	ctx context.Context,
	actor access.Actor,
	orderID uint,
	status string,
) error {

	if err := actor.Require(access.SetOrderStatus); err != nil {
		return err
	}

	s, err := domain.StaffStatus(status)
	if err != nil {
		return err
	}

	ok, err := uc.repo.SetStatus(ctx, orderID, s)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOrderNotFound
	}

	ev := events.NewOrderEvent(events.OrderStatusChanged)
	ev.OrderID = orderID
	ev.Status = string(s)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "order_status_set",
		Entity:   "order",
		EntityID: strconv.FormatUint(uint64(orderID), 10),
		Metadata: map[string]any{"status": s},
		Order:    &ev,
	})
	return nil
}

// ======================================================
// DELETE
// ======================================================

const MsgOrderDeleted = "Order deleted successfully!"

type DeleteOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteOrder(repo domain.Repository, audit *audit.Dispatcher) *DeleteOrder {
	return &DeleteOrder{repo: repo, audit: audit}
}

func (uc *DeleteOrder) Execute(ctx context.Context, actor access.Actor, orderID uint) error {
	if err := actor.Require(access.DeleteOrders); err != nil {
		return err
	}

	ok, err := uc.repo.Delete(ctx, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOrderNotFound
	}

	ev := events.NewOrderEvent(events.OrderDeleted)
	ev.OrderID = orderID

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   events.OrderDeleted,
		Entity:   "order",
		EntityID: strconv.FormatUint(uint64(orderID), 10),
		Order:    &ev,
	})
	return nil
}
