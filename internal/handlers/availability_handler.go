package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	ucScheduling "github.com/BohemiaEstudio/salon-scheduler/internal/usecase/scheduling"
)

type AvailabilityHandler struct {
	availabilityUC *ucScheduling.GetAvailability
	calendarUC     *ucScheduling.AvailabilityCalendar
}

func NewAvailabilityHandler(
	availabilityUC *ucScheduling.GetAvailability,
	calendarUC *ucScheduling.AvailabilityCalendar,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUC: availabilityUC,
		calendarUC:     calendarUC,
	}
}

// Get responde la grilla de horarios libres para un servicio.
// Público: lo consume la pantalla de reserva antes del login.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Falta o es inválido el parámetro service_id.")
		return
	}

	days, err := h.availabilityUC.Execute(c.Request.Context(), ucScheduling.AvailabilityInput{
		ServiceID: uint(serviceID),
		StartDate: c.Query("date"),
	})
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.List(c, days)
}

// Calendar responde el mapa día abierto/cerrado del horizonte.
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	days, err := h.calendarUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.List(c, days)
}
