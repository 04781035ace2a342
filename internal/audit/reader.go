package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type Filter struct {
	Action string
	Entity string
	From   *time.Time
	// To is inclusive of the whole day.
	To *time.Time

	Page  int
	Limit int
}

func (f Filter) normalized() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > maxLimit {
		f.Limit = defaultLimit
	}
	return f
}

type Page struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// Reader lists recorded audit entries, newest first.
type Reader struct {
	gw *db.Gateway
}

func NewReader(gw *db.Gateway) *Reader {
	return &Reader{gw: gw}
}

func (r *Reader) List(ctx context.Context, actor access.Actor, f Filter) (*Page, error) {
	if err := actor.Require(access.ViewAudit); err != nil {
		return nil, err
	}

	f = f.normalized()
	out := &Page{Page: f.Page, Limit: f.Limit, Logs: []models.AuditLog{}}

	err := r.gw.Run(ctx, "audit.list", func(tx *gorm.DB) error {
		q := tx.Model(&models.AuditLog{})

		if f.Action != "" {
			q = q.Where("action = ?", f.Action)
		}
		if f.Entity != "" {
			q = q.Where("entity = ?", f.Entity)
		}
		if f.From != nil {
			q = q.Where("created_at >= ?", *f.From)
		}
		if f.To != nil {
			q = q.Where("created_at < ?", f.To.Add(24*time.Hour))
		}

		if err := q.Session(&gorm.Session{}).Count(&out.Total).Error; err != nil {
			return err
		}

		return q.
			Order("created_at DESC, id DESC").
			Limit(f.Limit).
			Offset((f.Page - 1) * f.Limit).
			Find(&out.Logs).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
