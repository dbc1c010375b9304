package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	ucScheduling "github.com/BohemiaEstudio/salon-scheduler/internal/usecase/scheduling"
)

type DashboardHandler struct {
	db      *gorm.DB
	statsUC *ucScheduling.DashboardStats
}

func NewDashboardHandler(db *gorm.DB, statsUC *ucScheduling.DashboardStats) *DashboardHandler {
	return &DashboardHandler{db: db, statsUC: statsUC}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	out, err := h.statsUC.Execute(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.Business(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *DashboardHandler) AuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	if err := h.db.Order("created_at DESC").Limit(200).Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_logs_error", "No se pudieron leer los registros.")
		return
	}
	httpresp.List(c, logs)
}
