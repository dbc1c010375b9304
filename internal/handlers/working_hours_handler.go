package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingHoursRequest struct {
	StaffID           *uint  `json:"staff_id"`
	Weekday           *int   `json:"weekday" binding:"required"`
	StartTime         string `json:"start_time" binding:"required"`
	EndTime           string `json:"end_time" binding:"required"`
	ValidFrom         string `json:"valid_from"`
	ValidUntil        string `json:"valid_until"`
	AllowsColorDesign *bool  `json:"allows_color_design"`
	AllowsComplement  *bool  `json:"allows_complement"`
	Active            *bool  `json:"active"`
}

func (r *WorkingHoursRequest) validate() (string, bool) {
	if *r.Weekday < 0 || *r.Weekday > 6 {
		return "weekday fuera de rango (0=domingo..6=sábado).", false
	}
	for _, hm := range []string{r.StartTime, r.EndTime} {
		if _, err := time.Parse("15:04", hm); err != nil {
			return "Formato de hora inválido, use HH:MM.", false
		}
	}
	if r.EndTime <= r.StartTime {
		return "El fin tiene que ser posterior al inicio.", false
	}
	for _, d := range []string{r.ValidFrom, r.ValidUntil} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return "Formato de fecha inválido, use AAAA-MM-DD.", false
		}
	}
	return "", true
}

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

func (h *WorkingHoursHandler) List(c *gin.Context) {
	var rules []models.WorkingHours
	if err := h.db.Order("weekday ASC, start_time ASC").Find(&rules).Error; err != nil {
		httperr.Internal(c, "working_hours_list_error", "No se pudieron leer los horarios.")
		return
	}
	httpresp.List(c, rules)
}

func (h *WorkingHoursHandler) Create(c *gin.Context) {
	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}
	if msg, ok := req.validate(); !ok {
		httperr.BadRequest(c, "invalid_rule", msg)
		return
	}

	rule := models.WorkingHours{
		StaffID:           req.StaffID,
		Weekday:           *req.Weekday,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
		AllowsColorDesign: boolOr(req.AllowsColorDesign, true),
		AllowsComplement:  boolOr(req.AllowsComplement, true),
		Active:            boolOr(req.Active, true),
	}

	if err := h.db.Create(&rule).Error; err != nil {
		httperr.Internal(c, "working_hours_create_error", "No se pudo crear el horario.")
		return
	}
	httpresp.Created(c, rule)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var rule models.WorkingHours
	if err := h.db.First(&rule, id).Error; err != nil {
		httperr.NotFound(c, "working_hours_not_found", "El horario no existe.")
		return
	}

	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}
	if msg, ok := req.validate(); !ok {
		httperr.BadRequest(c, "invalid_rule", msg)
		return
	}

	rule.StaffID = req.StaffID
	rule.Weekday = *req.Weekday
	rule.StartTime = req.StartTime
	rule.EndTime = req.EndTime
	rule.ValidFrom = req.ValidFrom
	rule.ValidUntil = req.ValidUntil
	rule.AllowsColorDesign = boolOr(req.AllowsColorDesign, rule.AllowsColorDesign)
	rule.AllowsComplement = boolOr(req.AllowsComplement, rule.AllowsComplement)
	rule.Active = boolOr(req.Active, rule.Active)

	if err := h.db.Save(&rule).Error; err != nil {
		httperr.Internal(c, "working_hours_update_error", "No se pudo actualizar el horario.")
		return
	}
	httpresp.OK(c, rule)
}

// Delete desactiva la regla; los turnos ya tomados no se tocan.
func (h *WorkingHoursHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Model(&models.WorkingHours{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		httperr.Internal(c, "working_hours_delete_error", "No se pudo desactivar el horario.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "working_hours_not_found", "El horario no existe.")
		return
	}
	httpresp.OK(c, gin.H{"status": "ok"})
}
