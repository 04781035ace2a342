package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/cart"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

type CartGormRepository struct {
	gw *db.Gateway
}

func NewCartGormRepository(gw *db.Gateway) *CartGormRepository {
	return &CartGormRepository{gw: gw}
}

var _ domain.Repository = (*CartGormRepository)(nil)

func (r *CartGormRepository) Find(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.gw.Run(ctx, "cart.find", func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND pid = ?", userID, productID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartGormRepository) Get(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.gw.Run(ctx, "cart.get", func(tx *gorm.DB) error {
		return tx.First(&item, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartGormRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.gw.Create(ctx, item)
}

func (r *CartGormRepository) SetQuantity(ctx context.Context, id uint, quantity int) (bool, error) {
	var affected int64
	err := r.gw.Run(ctx, "cart.set_quantity", func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *CartGormRepository) AddQuantity(ctx context.Context, userID, productID uint, delta int) (bool, error) {
	var affected int64
	err := r.gw.Run(ctx, "cart.add_quantity", func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND pid = ?", userID, productID).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *CartGormRepository) ListByUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.gw.Run(ctx, "cart.list", func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	})
	return items, err
}

func (r *CartGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.gw.Run(ctx, "cart.delete", func(tx *gorm.DB) error {
		res := tx.Delete(&models.CartItem{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *CartGormRepository) Clear(ctx context.Context, userID uint) (int64, error) {
	var affected int64
	err := r.gw.Run(ctx, "cart.clear", func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&models.CartItem{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}
