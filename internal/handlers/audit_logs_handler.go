package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/audit"
	"github.com/BruksfildServices01/food-storefront/internal/httpresp"
	"github.com/BruksfildServices01/food-storefront/internal/middleware"
)

type AuditLogsHandler struct {
	reader *audit.Reader
	log    *zap.Logger
}

func NewAuditLogsHandler(reader *audit.Reader, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   queryDate(c, "from"),
		To:     queryDate(c, "to"),
		Page:   page,
		Limit:  limit,
	}

	res, err := h.reader.List(c.Request.Context(), middleware.Actor(c), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"page":  res.Page,
		"limit": res.Limit,
		"total": res.Total,
		"logs":  res.Logs,
	})
}

// queryDate parses a YYYY-MM-DD query value. Malformed dates are ignored.
func queryDate(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &d
}
