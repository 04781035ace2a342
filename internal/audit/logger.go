package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/food-storefront/internal/db"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

type Logger struct {
	gw *db.Gateway
}

func New(gw *db.Gateway) *Logger {
	return &Logger{gw: gw}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return l.gw.Create(ctx, &models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	})
}
