package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BohemiaEstudio/salon-scheduler/internal/audit"
	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	"github.com/BohemiaEstudio/salon-scheduler/internal/middleware"
	"github.com/BohemiaEstudio/salon-scheduler/internal/policy"
)

// PolicyHandler expone la configuración global. El update escribe la
// fila y refresca el snapshot en memoria: las operaciones en vuelo
// terminan con la política que leyeron, las nuevas ven la actual.
type PolicyHandler struct {
	repo     domain.Repository
	policies *policy.Store
	audit    *audit.Dispatcher
}

func NewPolicyHandler(repo domain.Repository, policies *policy.Store, auditor *audit.Dispatcher) *PolicyHandler {
	return &PolicyHandler{repo: repo, policies: policies, audit: auditor}
}

type PolicyRequest struct {
	SlotGranularityMin   *int     `json:"slot_granularity_min"`
	BookingHorizonDays   *int     `json:"booking_horizon_days"`
	DepositAmount        *float64 `json:"deposit_amount"`
	DepositDeadlineHours *int     `json:"deposit_deadline_hours"`
	MaxReprogramCount    *int     `json:"max_reprogram_count"`
	CancelCutoffHours    *int     `json:"cancel_cutoff_hours"`
}

func (h *PolicyHandler) Get(c *gin.Context) {
	p, err := h.repo.GetPolicy(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "policy_read_error", "No se pudo leer la configuración.")
		return
	}
	httpresp.OK(c, p)
}

func (h *PolicyHandler) Update(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	p, err := h.repo.GetPolicy(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "policy_read_error", "No se pudo leer la configuración.")
		return
	}

	if req.SlotGranularityMin != nil {
		if *req.SlotGranularityMin <= 0 {
			httperr.BadRequest(c, "invalid_granularity", "La granularidad tiene que ser positiva.")
			return
		}
		p.SlotGranularityMin = *req.SlotGranularityMin
	}
	if req.BookingHorizonDays != nil {
		if *req.BookingHorizonDays < 0 {
			httperr.BadRequest(c, "invalid_horizon", "El horizonte no puede ser negativo.")
			return
		}
		p.BookingHorizonDays = *req.BookingHorizonDays
	}
	if req.DepositAmount != nil {
		p.DepositAmount = *req.DepositAmount
	}
	if req.DepositDeadlineHours != nil {
		p.DepositDeadlineHours = *req.DepositDeadlineHours
	}
	if req.MaxReprogramCount != nil {
		p.MaxReprogramCount = *req.MaxReprogramCount
	}
	if req.CancelCutoffHours != nil {
		p.CancelCutoffHours = *req.CancelCutoffHours
	}

	if err := h.repo.SavePolicy(c.Request.Context(), p); err != nil {
		httperr.Internal(c, "policy_save_error", "No se pudo guardar la configuración.")
		return
	}

	if err := h.policies.Refresh(c.Request.Context()); err != nil {
		httperr.Internal(c, "policy_refresh_error", "Se guardó pero no se pudo refrescar el snapshot.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "politica_actualizada",
		Entity:   "politica",
		EntityID: &p.ID,
	})

	httpresp.OK(c, p)
}
