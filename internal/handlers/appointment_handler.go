package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httpresp"
	"github.com/BohemiaEstudio/salon-scheduler/internal/middleware"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	ucScheduling "github.com/BohemiaEstudio/salon-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC      *ucScheduling.CreateAppointment
	approveUC     *ucScheduling.ApproveAppointment
	confirmUC     *ucScheduling.ConfirmPayment
	reprogramUC   *ucScheduling.ReprogramAppointment
	cancelUC      *ucScheduling.CancelAppointment
	completeUC    *ucScheduling.CompleteAppointment
	noShowUC      *ucScheduling.MarkNoShow
	acceptOfferUC *ucScheduling.AcceptOffer
	listUC        *ucScheduling.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucScheduling.CreateAppointment,
	approveUC *ucScheduling.ApproveAppointment,
	confirmUC *ucScheduling.ConfirmPayment,
	reprogramUC *ucScheduling.ReprogramAppointment,
	cancelUC *ucScheduling.CancelAppointment,
	completeUC *ucScheduling.CompleteAppointment,
	noShowUC *ucScheduling.MarkNoShow,
	acceptOfferUC *ucScheduling.AcceptOffer,
	listUC *ucScheduling.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		approveUC:     approveUC,
		confirmUC:     confirmUC,
		reprogramUC:   reprogramUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		noShowUC:      noShowUC,
		acceptOfferUC: acceptOfferUC,
		listUC:        listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StaffID    *uint  `json:"staff_id"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
}

type ConfirmPaymentRequest struct {
	ProofRef string `json:"proof_ref"`
}

type ReprogramRequest struct {
	NewDate      string `json:"new_date" binding:"required"`
	NewStartTime string `json:"new_start_time" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func callerClientID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middleware.ContextClientID)
	if !ok {
		httperr.Forbidden(c, "client_only", "Solo clientes pueden hacer esto.")
		return 0, false
	}
	return v.(uint), true
}

func actorFrom(c *gin.Context) (domain.Actor, *uint, *uint) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	if c.GetString(middleware.ContextUserRole) == models.RoleClient {
		var clientID *uint
		if v, ok := c.Get(middleware.ContextClientID); ok {
			id := v.(uint)
			clientID = &id
		}
		return domain.ActorClient, &userID, clientID
	}
	return domain.ActorStaff, &userID, nil
}

// ======================================================
// CLIENT
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clientID, ok := callerClientID(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucScheduling.CreateAppointmentInput{
		ClientID:   clientID,
		StaffID:    req.StaffID,
		ServiceIDs: req.ServiceIDs,
		Date:       req.Date,
		StartTime:  req.StartTime,
	})
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	clientID, ok := callerClientID(c)
	if !ok {
		return
	}

	aps, err := h.listUC.ForClient(c.Request.Context(), clientID)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) AcceptOffer(c *gin.Context) {
	clientID, ok := callerClientID(c)
	if !ok {
		return
	}

	token := c.Param("token")
	ap, err := h.acceptOfferUC.Execute(c.Request.Context(), token, clientID)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STAFF
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Falta el parámetro date.")
		return
	}

	aps, err := h.listUC.ForDate(c.Request.Context(), date)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) Approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	ap, err := h.approveUC.Execute(c.Request.Context(), id, staffID)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ConfirmPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), id, staffID, req.ProofRef)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	ap, err := h.completeUC.Execute(c.Request.Context(), id, staffID)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	ap, err := h.noShowUC.Execute(c.Request.Context(), id, staffID)
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// COMPARTIDOS (cliente dueño o staff)
// ======================================================

func (h *AppointmentHandler) Reprogram(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ReprogramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	actor, actorUserID, callerClientID := actorFrom(c)

	ap, err := h.reprogramUC.Execute(c.Request.Context(), ucScheduling.ReprogramInput{
		AppointmentID:  id,
		NewDate:        req.NewDate,
		NewStartTime:   req.NewStartTime,
		Actor:          actor,
		ActorUserID:    actorUserID,
		CallerClientID: callerClientID,
	})
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	actor, actorUserID, callerClientID := actorFrom(c)

	out, err := h.cancelUC.Execute(c.Request.Context(), ucScheduling.CancelInput{
		AppointmentID:  id,
		Reason:         req.Reason,
		Actor:          actor,
		ActorUserID:    actorUserID,
		CallerClientID: callerClientID,
	})
	if err != nil {
		httperr.Business(c, err)
		return
	}

	httpresp.OK(c, out)
}
