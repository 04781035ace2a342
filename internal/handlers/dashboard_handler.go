package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/httpresp"
	"github.com/BruksfildServices01/food-storefront/internal/middleware"
	ucDashboard "github.com/BruksfildServices01/food-storefront/internal/usecase/dashboard"
)

type DashboardHandler struct {
	admin *ucDashboard.GetAdminStats
	staff *ucDashboard.GetStaffStats
	log   *zap.Logger
}

func NewDashboardHandler(
	admin *ucDashboard.GetAdminStats,
	staff *ucDashboard.GetStaffStats,
	log *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{admin: admin, staff: staff, log: log}
}

func (h *DashboardHandler) AdminStats(c *gin.Context) {
	stats, err := h.admin.Execute(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"stats": stats})
}

func (h *DashboardHandler) StaffStats(c *gin.Context) {
	stats, err := h.staff.Execute(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"stats": stats})
}
