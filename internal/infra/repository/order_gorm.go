package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/order"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

type OrderGormRepository struct {
	gw *db.Gateway
}

func NewOrderGormRepository(gw *db.Gateway) *OrderGormRepository {
	return &OrderGormRepository{gw: gw}
}

var _ domain.Repository = (*OrderGormRepository)(nil)

const orderSummaryColumns = `orders.*, users.name AS user_name,
	TRIM(COALESCE(users.fname, '') || ' ' || COALESCE(users.mname, '') || ' ' || COALESCE(users.lname, '')) AS full_name`

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *OrderGormRepository) OIDExists(ctx context.Context, oid string) (bool, error) {
	var count int64
	err := r.gw.Run(ctx, "order.oid_exists", func(tx *gorm.DB) error {
		return tx.Model(&models.Order{}).Where("oid = ?", oid).Count(&count).Error
	})
	return count > 0, err
}

func (r *OrderGormRepository) Create(
	ctx context.Context,
	o *models.Order,
	items []models.OrderItem,
) error {
	return r.gw.Transaction(ctx, func(ctx context.Context) error {
		if err := r.gw.Create(ctx, o); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		for i := range items {
			items[i].OrderID = o.ID
		}
		return r.gw.Run(ctx, "order.create_items", func(tx *gorm.DB) error {
			return tx.Create(&items).Error
		})
	})
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *OrderGormRepository) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	var o models.Order
	err := r.gw.Run(ctx, "order.get", func(tx *gorm.DB) error {
		return tx.First(&o, orderID).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.Summary, error) {
	var out []domain.Summary

	err := r.gw.Run(ctx, "order.list", func(tx *gorm.DB) error {
		q := tx.Model(&models.Order{}).
			Select(orderSummaryColumns).
			Joins("JOIN users ON users.id = orders.user_id")

		if f.UserID != 0 {
			q = q.Where("orders.user_id = ?", f.UserID)
		}
		if len(f.Statuses) > 0 {
			q = q.Where("orders.payment_status IN ?", domain.StatusStrings(f.Statuses))
		}
		if f.Search != "" {
			like := "%" + strings.ToLower(f.Search) + "%"
			q = q.Where(
				"(CAST(orders.id AS TEXT) LIKE ? OR LOWER(orders.name) LIKE ? OR LOWER(orders.email) LIKE ? OR LOWER(orders.oid) LIKE ?)",
				like, like, like, like,
			)
		}

		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		return q.Order("orders.placed_on " + dir).Order("orders.id " + dir).Scan(&out).Error
	})
	return out, err
}

func (r *OrderGormRepository) Items(ctx context.Context, orderID uint) ([]domain.Item, error) {
	var out []domain.Item

	err := r.gw.Run(ctx, "order.items", func(tx *gorm.DB) error {
		return tx.Table("order_items").
			Select("order_items.product_name, order_items.quantity, products.price").
			Joins("INNER JOIN products ON order_items.product_name = products.name").
			Where("order_items.order_id = ?", orderID).
			Order("order_items.id ASC").
			Scan(&out).Error
	})
	return out, err
}

// --------------------------------------------------
// Status
// --------------------------------------------------

func (r *OrderGormRepository) ApplyTransition(
	ctx context.Context,
	oid string,
	userID uint,
	t domain.Transition,
) (*models.Order, error) {

	var out *models.Order
	err := r.gw.Transaction(ctx, func(ctx context.Context) error {
		return r.gw.Run(ctx, "order.transition", func(tx *gorm.DB) error {
			res := tx.Model(&models.Order{}).
				Where("oid = ? AND user_id = ?", oid, userID).
				Update("payment_status", gorm.Expr(
					"CASE WHEN payment_status = ? THEN ? ELSE ? END",
					string(domain.StatusDelivered),
					string(t.FromDelivered),
					string(t.Otherwise),
				))
			if res.Error != nil || res.RowsAffected == 0 {
				return res.Error
			}

			var o models.Order
			if err := tx.Where("oid = ? AND user_id = ?", oid, userID).Take(&o).Error; err != nil {
				return err
			}
			out = &o
			return nil
		})
	})
	return out, err
}

func (r *OrderGormRepository) SetStatus(ctx context.Context, orderID uint, s domain.Status) (bool, error) {
	var affected int64
	err := r.gw.Run(ctx, "order.set_status", func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Update("payment_status", string(s))
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

func (r *OrderGormRepository) Delete(ctx context.Context, orderID uint) (bool, error) {
	var affected int64

	err := r.gw.Transaction(ctx, func(ctx context.Context) error {
		return r.gw.Run(ctx, "order.delete", func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			res := tx.Delete(&models.Order{}, orderID)
			affected = res.RowsAffected
			return res.Error
		})
	})
	return affected > 0, err
}
