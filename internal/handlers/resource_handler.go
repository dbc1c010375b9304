package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

// ResourceHandler administra el equipamiento físico: tipos, unidades
// y los requisitos por servicio que limitan la concurrencia.
type ResourceHandler struct {
	db *gorm.DB
}

func NewResourceHandler(db *gorm.DB) *ResourceHandler {
	return &ResourceHandler{db: db}
}

// ---------- Tipos ----------

type ResourceTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func (h *ResourceHandler) ListTypes(c *gin.Context) {
	var types []models.ResourceType
	if err := h.db.Order("name ASC").Find(&types).Error; err != nil {
		httperr.Internal(c, "resource_types_list_error", "No se pudieron leer los tipos de recurso.")
		return
	}
	httpresp.List(c, types)
}

func (h *ResourceHandler) CreateType(c *gin.Context) {
	var req ResourceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	t := models.ResourceType{
		Name:        req.Name,
		Description: req.Description,
		Active:      boolOr(req.Active, true),
	}
	if err := h.db.Create(&t).Error; err != nil {
		httperr.Internal(c, "resource_type_create_error", "No se pudo crear el tipo de recurso.")
		return
	}
	httpresp.Created(c, t)
}

func (h *ResourceHandler) UpdateType(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var t models.ResourceType
	if err := h.db.First(&t, id).Error; err != nil {
		httperr.NotFound(c, "resource_type_not_found", "El tipo de recurso no existe.")
		return
	}

	var req ResourceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	t.Name = req.Name
	t.Description = req.Description
	t.Active = boolOr(req.Active, t.Active)

	if err := h.db.Save(&t).Error; err != nil {
		httperr.Internal(c, "resource_type_update_error", "No se pudo actualizar el tipo de recurso.")
		return
	}
	httpresp.OK(c, t)
}

// ---------- Unidades ----------

type ResourceUnitRequest struct {
	ResourceTypeID uint   `json:"resource_type_id" binding:"required"`
	Label          string `json:"label"`
	Status         string `json:"status"`
	Active         *bool  `json:"active"`
}

func validUnitStatus(s string) bool {
	switch s {
	case models.UnitAvailable, models.UnitInUse, models.UnitMaintenance, models.UnitRetired:
		return true
	}
	return false
}

func (h *ResourceHandler) ListUnits(c *gin.Context) {
	var units []models.ResourceUnit
	q := h.db.Preload("ResourceType").Order("resource_type_id ASC, id ASC")
	if typeID := c.Query("resource_type_id"); typeID != "" {
		q = q.Where("resource_type_id = ?", typeID)
	}
	if err := q.Find(&units).Error; err != nil {
		httperr.Internal(c, "resource_units_list_error", "No se pudieron leer las unidades.")
		return
	}
	httpresp.List(c, units)
}

func (h *ResourceHandler) CreateUnit(c *gin.Context) {
	var req ResourceUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	status := req.Status
	if status == "" {
		status = models.UnitAvailable
	}
	if !validUnitStatus(status) {
		httperr.BadRequest(c, "invalid_status", "Estado de unidad desconocido.")
		return
	}

	if err := h.db.First(&models.ResourceType{}, req.ResourceTypeID).Error; err != nil {
		httperr.BadRequest(c, "resource_type_not_found", "El tipo de recurso no existe.")
		return
	}

	u := models.ResourceUnit{
		ResourceTypeID: req.ResourceTypeID,
		Label:          req.Label,
		Status:         status,
		Active:         boolOr(req.Active, true),
	}
	if err := h.db.Create(&u).Error; err != nil {
		httperr.Internal(c, "resource_unit_create_error", "No se pudo crear la unidad.")
		return
	}
	httpresp.Created(c, u)
}

// UpdateUnit cambia estado/etiqueta; pasar una unidad a mantenimiento
// o baja reduce la capacidad operativa desde la próxima validación.
func (h *ResourceHandler) UpdateUnit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var u models.ResourceUnit
	if err := h.db.First(&u, id).Error; err != nil {
		httperr.NotFound(c, "resource_unit_not_found", "La unidad no existe.")
		return
	}

	var req ResourceUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Status != "" {
		if !validUnitStatus(req.Status) {
			httperr.BadRequest(c, "invalid_status", "Estado de unidad desconocido.")
			return
		}
		u.Status = req.Status
	}
	if req.Label != "" {
		u.Label = req.Label
	}
	u.Active = boolOr(req.Active, u.Active)

	if err := h.db.Save(&u).Error; err != nil {
		httperr.Internal(c, "resource_unit_update_error", "No se pudo actualizar la unidad.")
		return
	}
	httpresp.OK(c, u)
}

// ---------- Requisitos por servicio ----------

type ServiceRequirementRequest struct {
	ServiceID      uint  `json:"service_id" binding:"required"`
	ResourceTypeID uint  `json:"resource_type_id" binding:"required"`
	Required       *bool `json:"required"`
	MinUnits       int   `json:"min_units"`
}

func (h *ResourceHandler) ListRequirements(c *gin.Context) {
	var reqs []models.ServiceRequirement
	q := h.db.Preload("Service").Preload("ResourceType")
	if serviceID := c.Query("service_id"); serviceID != "" {
		q = q.Where("service_id = ?", serviceID)
	}
	if err := q.Find(&reqs).Error; err != nil {
		httperr.Internal(c, "requirements_list_error", "No se pudieron leer los requisitos.")
		return
	}
	httpresp.List(c, reqs)
}

func (h *ResourceHandler) CreateRequirement(c *gin.Context) {
	var req ServiceRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	minUnits := req.MinUnits
	if minUnits <= 0 {
		minUnits = 1
	}

	r := models.ServiceRequirement{
		ServiceID:      req.ServiceID,
		ResourceTypeID: req.ResourceTypeID,
		Required:       boolOr(req.Required, true),
		MinUnits:       minUnits,
	}
	if err := h.db.Create(&r).Error; err != nil {
		httperr.Internal(c, "requirement_create_error", "No se pudo crear el requisito.")
		return
	}
	httpresp.Created(c, r)
}

func (h *ResourceHandler) DeleteRequirement(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&models.ServiceRequirement{}, id)
	if res.Error != nil {
		httperr.Internal(c, "requirement_delete_error", "No se pudo borrar el requisito.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "requirement_not_found", "El requisito no existe.")
		return
	}
	httpresp.OK(c, gin.H{"status": "ok"})
}
