package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

type ScheduleBlockHandler struct {
	db *gorm.DB
}

func NewScheduleBlockHandler(db *gorm.DB) *ScheduleBlockHandler {
	return &ScheduleBlockHandler{db: db}
}

type ScheduleBlockRequest struct {
	StaffID  *uint  `json:"staff_id"`
	StartAt  string `json:"start_at" binding:"required"` // "2006-01-02 15:04"
	EndAt    string `json:"end_at" binding:"required"`
	Reason   string `json:"reason"`
	WholeDay bool   `json:"whole_day"`
}

func (h *ScheduleBlockHandler) List(c *gin.Context) {
	var blocks []models.ScheduleBlock
	q := h.db.Order("start_at ASC")
	if from := c.Query("from"); from != "" {
		q = q.Where("end_at >= ?", from)
	}
	if err := q.Find(&blocks).Error; err != nil {
		httperr.Internal(c, "blocks_list_error", "No se pudieron leer los bloqueos.")
		return
	}
	httpresp.List(c, blocks)
}

func (h *ScheduleBlockHandler) Create(c *gin.Context) {
	var req ScheduleBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	loc := timezone.Location("")
	startAt, err := time.ParseInLocation("2006-01-02 15:04", req.StartAt, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_at", "Formato inválido, use AAAA-MM-DD HH:MM.")
		return
	}
	endAt, err := time.ParseInLocation("2006-01-02 15:04", req.EndAt, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_at", "Formato inválido, use AAAA-MM-DD HH:MM.")
		return
	}
	if !endAt.After(startAt) {
		httperr.BadRequest(c, "invalid_interval", "El fin tiene que ser posterior al inicio.")
		return
	}

	block := models.ScheduleBlock{
		StaffID:  req.StaffID,
		StartAt:  startAt,
		EndAt:    endAt,
		Reason:   req.Reason,
		WholeDay: req.WholeDay,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "block_create_error", "No se pudo crear el bloqueo.")
		return
	}
	httpresp.Created(c, block)
}

func (h *ScheduleBlockHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&models.ScheduleBlock{}, id)
	if res.Error != nil {
		httperr.Internal(c, "block_delete_error", "No se pudo borrar el bloqueo.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "block_not_found", "El bloqueo no existe.")
		return
	}
	httpresp.OK(c, gin.H{"status": "ok"})
}
