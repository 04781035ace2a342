package order

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/audit"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	domainCart "github.com/BruksfildServices01/food-storefront/internal/domain/cart"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/order"
	domainUser "github.com/BruksfildServices01/food-storefront/internal/domain/user"
	"github.com/BruksfildServices01/food-storefront/internal/events"
	"github.com/BruksfildServices01/food-storefront/internal/models"
	"github.com/BruksfildServices01/food-storefront/internal/usecase"
)

// ======================================================
// INPUT
// ======================================================

type Customer struct {
	Name    string `json:"name"`
	Number  string `json:"number"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (c Customer) empty() bool {
	return strings.TrimSpace(c.Name+c.Number+c.Email+c.Address) == ""
}

type CreateOrderInput struct {
	UserID        uint
	Customer      Customer
	Items         []domain.Line
	PaymentMethod string
}

type CreateOrderResult struct {
	OrderID uint
	OID     string
}

const MsgOrderPlaced = "Order placed successfully!"

// oidAttempts bounds the retries on a public id collision.
const oidAttempts = 5

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	tx     usecase.Transactor
	orders domain.Repository
	carts  domainCart.Repository
	users  domainUser.Repository
	audit  *audit.Dispatcher
	now    func() time.Time
	newOID func() (string, error)
}

func NewCreateOrder(
	tx usecase.Transactor,
	orders domain.Repository,
	carts domainCart.Repository,
	users domainUser.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *CreateOrder {
	return &CreateOrder{
		tx:     tx,
		orders: orders,
		carts:  carts,
		users:  users,
		audit:  audit,
		now:    now,
		newOID: domain.NewOID,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute records the order, its lines and empties the cart in one
// transaction. Totals come from the submitted lines.
func (uc *CreateOrder) Execute(
	ctx context.Context,
	actor access.Actor,
	in CreateOrderInput,
) (*CreateOrderResult, error) {

	if err := actor.RequireOwner(access.OwnOrders, in.UserID); err != nil {
		return nil, err
	}
	if err := domain.ValidateLines(in.Items); err != nil {
		return nil, err
	}

	customer, err := uc.customer(ctx, in)
	if err != nil {
		return nil, err
	}

	totalProducts, totalPrice := domain.Totals(in.Items)

	order := models.Order{
		UserID:        in.UserID,
		Name:          customer.Name,
		Number:        customer.Number,
		Email:         customer.Email,
		Method:        in.PaymentMethod,
		Address:       customer.Address,
		TotalProducts: totalProducts,
		TotalPrice:    totalPrice,
		PaymentStatus: string(domain.InitialStatus()),
	}

	items := make([]models.OrderItem, len(in.Items))
	for i, l := range in.Items {
		items[i] = models.OrderItem{ProductName: l.Name, Quantity: l.Quantity}
	}

	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		oid, err := uc.uniqueOID(ctx)
		if err != nil {
			return err
		}
		order.Oid = oid
		order.PlacedOn = uc.now()

		if err := uc.orders.Create(ctx, &order, items); err != nil {
			return err
		}

		_, err = uc.carts.Clear(ctx, in.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	ev := events.NewOrderEvent(events.OrderPlaced)
	ev.OrderID = order.ID
	ev.OID = order.Oid
	ev.UserID = order.UserID
	ev.Status = order.PaymentStatus
	ev.TotalProducts = order.TotalProducts
	ev.TotalPrice = order.TotalPrice

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   events.OrderPlaced,
		Entity:   "order",
		EntityID: order.Oid,
		Metadata: map[string]any{
			"total_products": order.TotalProducts,
			"total_price":    order.TotalPrice,
			"method":         order.Method,
		},
		Order: &ev,
	})

	return &CreateOrderResult{OrderID: order.ID, OID: order.Oid}, nil
}

func (uc *CreateOrder) uniqueOID(ctx context.Context) (string, error) {
	for i := 0; i < oidAttempts; i++ {
		oid, err := uc.newOID()
		if err != nil {
			return "", err
		}
		taken, err := uc.orders.OIDExists(ctx, oid)
		if err != nil {
			return "", err
		}
		if !taken {
			return oid, nil
		}
	}
	return "", domain.ErrOIDUnavailable
}

// customer falls back to the account's stored details when the request
// carries none.
func (uc *CreateOrder) customer(ctx context.Context, in CreateOrderInput) (Customer, error) {
	if !in.Customer.empty() {
		return in.Customer, nil
	}

	u, err := uc.users.Get(ctx, in.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return Customer{}, domain.ErrMissingCustomer
		}
		return Customer{}, err
	}

	return Customer{
		Name:    u.FullName(),
		Number:  u.Number,
		Email:   u.Email,
		Address: u.Address,
	}, nil
}
