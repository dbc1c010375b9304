package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	ucScheduling "github.com/BohemiaEstudio/salon-scheduler/internal/usecase/scheduling"
)

type WaitlistHandler struct {
	db     *gorm.DB
	joinUC *ucScheduling.JoinWaitlist
}

func NewWaitlistHandler(db *gorm.DB, joinUC *ucScheduling.JoinWaitlist) *WaitlistHandler {
	return &WaitlistHandler{db: db, joinUC: joinUC}
}

type JoinWaitlistRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	DateFrom  string `json:"date_from" binding:"required"`
	DateTo    string `json:"date_to" binding:"required"`
	TimeFrom  string `json:"time_from"`
	TimeTo    string `json:"time_to"`
}

func (h *WaitlistHandler) Join(c *gin.Context) {
	clientID, ok := callerClientID(c)
	if !ok {
		return
	}

	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	entry, err := h.joinUC.Execute(c.Request.Context(), ucScheduling.JoinWaitlistInput{
		ClientID:  clientID,
		ServiceID: req.ServiceID,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		TimeFrom:  req.TimeFrom,
		TimeTo:    req.TimeTo,
	})
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.Created(c, entry)
}

// List: revisión de la lista de espera para el staff.
func (h *WaitlistHandler) List(c *gin.Context) {
	var entries []models.WaitlistEntry
	q := h.db.Preload("Client").Preload("Service").Order("created_at ASC")
	if c.Query("active") != "false" {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&entries).Error; err != nil {
		httperr.Internal(c, "waitlist_list_error", "No se pudo leer la lista de espera.")
		return
	}

	httpresp.List(c, entries)
}

// Leave desactiva la entrada del propio cliente.
func (h *WaitlistHandler) Leave(c *gin.Context) {
	clientID, ok := callerClientID(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Model(&models.WaitlistEntry{}).
		Where("id = ? AND client_id = ?", id, clientID).
		Update("active", false)
	if res.Error != nil {
		httperr.Internal(c, "waitlist_leave_error", "No se pudo salir de la lista de espera.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "waitlist_entry_not_found", "La entrada no existe.")
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}
