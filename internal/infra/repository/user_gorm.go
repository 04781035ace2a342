package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/user"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

type UserGormRepository struct {
	gw *db.Gateway
}

func NewUserGormRepository(gw *db.Gateway) *UserGormRepository {
	return &UserGormRepository{gw: gw}
}

var _ domain.Repository = (*UserGormRepository)(nil)

func (r *UserGormRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.gw.Run(ctx, "user.get", func(tx *gorm.DB) error {
		return tx.First(&u, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByName(ctx context.Context, name string) (*models.User, error) {
	var u models.User
	err := r.gw.Run(ctx, "user.find_by_name", func(tx *gorm.DB) error {
		return tx.Where("name = ?", name).First(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindClashing(
	ctx context.Context,
	name, email, number string,
	excludeID uint,
) ([]models.User, error) {

	var out []models.User
	err := r.gw.Run(ctx, "user.find_clashing", func(tx *gorm.DB) error {
		match := tx.Where("name = ?", name).Or("email = ?", email)
		if number != "" {
			match = match.Or("number = ?", number)
		}
		return tx.Where("id <> ?", excludeID).Where(match).Find(&out).Error
	})
	return out, err
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.gw.Create(ctx, u)
}

func (r *UserGormRepository) Update(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	var affected int64
	err := r.gw.Run(ctx, "user.update", func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *UserGormRepository) List(ctx context.Context, userType, sort string) ([]models.User, error) {
	var out []models.User
	err := r.gw.Run(ctx, "user.list", func(tx *gorm.DB) error {
		q := tx.Model(&models.User{})
		if userType != "" && userType != "all" {
			q = q.Where("user_type = ?", userType)
		}
		return q.Order(domain.OrderClause(sort)).Find(&out).Error
	})
	return out, err
}

func (r *UserGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64

	err := r.gw.Transaction(ctx, func(ctx context.Context) error {
		return r.gw.Run(ctx, "user.delete", func(tx *gorm.DB) error {
			if err := tx.Exec(
				"DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE user_id = ?)", id,
			).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).Delete(&models.Order{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}

			res := tx.Delete(&models.User{}, id)
			affected = res.RowsAffected
			return res.Error
		})
	})
	return affected > 0, err
}
