package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/food-storefront/internal/db"
	domain "github.com/BruksfildServices01/food-storefront/internal/domain/catalog"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

type CatalogGormRepository struct {
	gw *db.Gateway
}

func NewCatalogGormRepository(gw *db.Gateway) *CatalogGormRepository {
	return &CatalogGormRepository{gw: gw}
}

var _ domain.Repository = (*CatalogGormRepository)(nil)

func (r *CatalogGormRepository) List(ctx context.Context, q domain.Query) ([]models.Product, error) {
	var out []models.Product
	err := r.gw.Run(ctx, "catalog.list", func(tx *gorm.DB) error {
		stmt := tx.Model(&models.Product{})
		if q.Category != "" {
			stmt = stmt.Where("category = ?", q.Category)
		}
		if q.Search != "" {
			stmt = stmt.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
		}
		return stmt.Order(q.OrderBy).Find(&out).Error
	})
	return out, err
}

func (r *CatalogGormRepository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var out []models.Product
	err := r.gw.Run(ctx, "catalog.by_category", func(tx *gorm.DB) error {
		return tx.Where("category = ?", category).Order("name").Find(&out).Error
	})
	return out, err
}

func (r *CatalogGormRepository) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.gw.Run(ctx, "catalog.categories", func(tx *gorm.DB) error {
		return tx.Model(&models.Product{}).
			Distinct("category").
			Where("category IS NOT NULL AND category <> '' AND category <> ?", models.StockOut).
			Order("category").
			Pluck("category", &out).Error
	})
	return out, err
}

func (r *CatalogGormRepository) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.gw.Run(ctx, "catalog.get", func(tx *gorm.DB) error {
		return tx.First(&p, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogGormRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.gw.Run(ctx, "catalog.name_taken", func(tx *gorm.DB) error {
		return tx.Model(&models.Product{}).
			Where("name = ? AND id <> ?", name, excludeID).
			Count(&count).Error
	})
	return count > 0, err
}

func (r *CatalogGormRepository) Create(ctx context.Context, p *models.Product) error {
	return r.gw.Create(ctx, p)
}

func (r *CatalogGormRepository) Update(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	var affected int64
	err := r.gw.Run(ctx, "catalog.update", func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *CatalogGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.gw.Run(ctx, "catalog.delete", func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}
