package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	"github.com/BohemiaEstudio/salon-scheduler/internal/middleware"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// ListMine: avisos del usuario autenticado. Un cliente ve los suyos
// por client_id; el staff los suyos por user_id.
func (h *NotificationHandler) ListMine(c *gin.Context) {
	var notifications []models.Notification

	q := h.db.Order("created_at DESC").Limit(100)
	if v, ok := c.Get(middleware.ContextClientID); ok {
		q = q.Where("client_id = ?", v.(uint))
	} else {
		userID := c.MustGet(middleware.ContextUserID).(uint)
		q = q.Where("user_id = ?", userID)
	}

	if err := q.Find(&notifications).Error; err != nil {
		httperr.Internal(c, "notifications_list_error", "No se pudieron leer los avisos.")
		return
	}

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	q := h.db.Model(&models.Notification{}).Where("id = ?", id)
	if v, ok := c.Get(middleware.ContextClientID); ok {
		q = q.Where("client_id = ?", v.(uint))
	} else {
		userID := c.MustGet(middleware.ContextUserID).(uint)
		q = q.Where("user_id = ?", userID)
	}

	res := q.Update("status", models.NotifRead)
	if res.Error != nil {
		httperr.Internal(c, "notification_update_error", "No se pudo actualizar el aviso.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "El aviso no existe.")
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}
