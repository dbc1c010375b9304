package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	DurationMin *int    `json:"duration_min"`
	BasePrice   float64 `json:"base_price"`
	Active      *bool   `json:"active"`
}

type ServiceCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// ListPublic: catálogo activo para la pantalla de reserva.
func (h *ServiceHandler) ListPublic(c *gin.Context) {
	var services []models.Service
	if err := h.db.Preload("Category").
		Where("active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "services_list_error", "No se pudieron leer los servicios.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Preload("Category").Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "services_list_error", "No se pudieron leer los servicios.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}
	if req.DurationMin != nil && *req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "La duración tiene que ser positiva.")
		return
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		DurationMin: req.DurationMin,
		BasePrice:   req.BasePrice,
		Active:      boolOr(req.Active, true),
	}
	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "service_create_error", "No se pudo crear el servicio.")
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "El servicio no existe.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}
	if req.DurationMin != nil && *req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "La duración tiene que ser positiva.")
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.CategoryID = req.CategoryID
	svc.DurationMin = req.DurationMin
	svc.BasePrice = req.BasePrice
	svc.Active = boolOr(req.Active, svc.Active)

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "service_update_error", "No se pudo actualizar el servicio.")
		return
	}
	httpresp.OK(c, svc)
}

// ---------- Categorías ----------

func (h *ServiceHandler) ListCategories(c *gin.Context) {
	var cats []models.ServiceCategory
	if err := h.db.Order("name ASC").Find(&cats).Error; err != nil {
		httperr.Internal(c, "categories_list_error", "No se pudieron leer las categorías.")
		return
	}
	httpresp.List(c, cats)
}

func (h *ServiceHandler) CreateCategory(c *gin.Context) {
	var req ServiceCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	cat := models.ServiceCategory{
		Name:        req.Name,
		Description: req.Description,
		Active:      boolOr(req.Active, true),
	}
	if err := h.db.Create(&cat).Error; err != nil {
		httperr.Internal(c, "category_create_error", "No se pudo crear la categoría.")
		return
	}
	httpresp.Created(c, cat)
}
