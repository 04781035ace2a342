package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	"github.com/BruksfildServices01/food-storefront/internal/domain/order"
)

type Querier interface {
	Query(ctx context.Context, stmt string, args ...any) ([]db.Row, error)
}

type AdminStats struct {
	PendingOrders   int64 `json:"pending_orders"`
	TotalOrders     int64 `json:"total_orders"`
	CompletedOrders int64 `json:"completed_orders"`
	TotalProducts   int64 `json:"total_products"`
	TotalUsers      int64 `json:"total_users"`
	TotalAdmins     int64 `json:"total_admins"`
	TotalStaff      int64 `json:"total_staff"`
}

type StaffStats struct {
	PendingOrders   int64           `json:"pending_orders"`
	TotalOrders     int64           `json:"total_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	CompletedValue  decimal.Decimal `json:"completed_value"`
	TotalProducts   int64           `json:"total_products"`
}

const adminStatsQuery = `
SELECT
	(SELECT COUNT(*) FROM orders WHERE payment_status = ?) AS pending_orders,
	(SELECT COUNT(*) FROM orders) AS total_orders,
	(SELECT COUNT(*) FROM orders WHERE payment_status = ?) AS completed_orders,
	(SELECT COUNT(*) FROM products) AS total_products,
	(SELECT COUNT(*) FROM users WHERE user_type = ?) AS total_users,
	(SELECT COUNT(*) FROM users WHERE user_type = ?) AS total_admins,
	(SELECT COUNT(*) FROM users WHERE user_type = ?) AS total_staff`

const staffStatsQuery = `
SELECT
	(SELECT COUNT(*) FROM orders WHERE payment_status = ?) AS pending_orders,
	(SELECT COUNT(*) FROM orders) AS total_orders,
	(SELECT COUNT(*) FROM orders WHERE payment_status = ?) AS completed_orders,
	(SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE payment_status = ?) AS completed_value,
	(SELECT COUNT(*) FROM products) AS total_products`

type GetAdminStats struct {
	q Querier
}

func NewGetAdminStats(q Querier) *GetAdminStats {
	return &GetAdminStats{q: q}
}

func (uc *GetAdminStats) Execute(ctx context.Context, actor access.Actor) (*AdminStats, error) {
	if err := actor.Require(access.AdminDashboard); err != nil {
		return nil, err
	}

	row, err := one(ctx, uc.q, adminStatsQuery,
		string(order.StatusPending),
		string(order.StatusCompletedConfirmed),
		string(access.RoleClient),
		string(access.RoleAdmin),
		string(access.RoleStaff),
	)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		PendingOrders:   row.Int64("pending_orders"),
		TotalOrders:     row.Int64("total_orders"),
		CompletedOrders: row.Int64("completed_orders"),
		TotalProducts:   row.Int64("total_products"),
		TotalUsers:      row.Int64("total_users"),
		TotalAdmins:     row.Int64("total_admins"),
		TotalStaff:      row.Int64("total_staff"),
	}, nil
}

type GetStaffStats struct {
	q Querier
}

func NewGetStaffStats(q Querier) *GetStaffStats {
	return &GetStaffStats{q: q}
}

// Execute counts completed orders and their value by the
// completed_confirmed status, the only finished state ever stored.
func (uc *GetStaffStats) Execute(ctx context.Context, actor access.Actor) (*StaffStats, error) {
	if err := actor.Require(access.StaffDashboard); err != nil {
		return nil, err
	}

	row, err := one(ctx, uc.q, staffStatsQuery,
		string(order.StatusPending),
		string(order.StatusCompletedConfirmed),
		string(order.StatusCompletedConfirmed),
	)
	if err != nil {
		return nil, err
	}

	return &StaffStats{
		PendingOrders:   row.Int64("pending_orders"),
		TotalOrders:     row.Int64("total_orders"),
		CompletedOrders: row.Int64("completed_orders"),
		CompletedValue:  row.Decimal("completed_value"),
		TotalProducts:   row.Int64("total_products"),
	}, nil
}

func one(ctx context.Context, q Querier, stmt string, args ...any) (db.Row, error) {
	rows, err := q.Query(ctx, stmt, args...)
	if err != nil {
		return db.Row{}, err
	}
	if len(rows) == 0 {
		return db.Row{}, nil
	}
	return rows[0], nil
}
