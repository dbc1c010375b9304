package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/metrics"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

// FreedSlot es la foto del turno tomada ANTES de escribir la
// cancelación: fecha, hora, servicios, staff y cliente que cancela.
type FreedSlot struct {
	Date       string
	StartTime  string
	ServiceIDs []uint
	StaffID    *uint
	ClientID   uint
}

// OfferPayload viaja en la notificación de oferta; alcanza para
// revalidar y aplicar la aceptación después.
type OfferPayload struct {
	Kind            string `json:"kind"` // "waitlist" | "advance"
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	ServiceIDs      []uint `json:"service_ids"`
	StaffID         *uint  `json:"staff_id,omitempty"`
	WaitlistEntryID uint   `json:"waitlist_entry_id,omitempty"`
	AppointmentID   uint   `json:"appointment_id,omitempty"`
}

type OfferSummary struct {
	OffersSent int    `json:"offers_sent"`
	Recipients []uint `json:"recipient_client_ids"`
}

// Optimizer recorre la lista de espera y los turnos futuros que
// califican y les ofrece el hueco liberado. Mejor esfuerzo y no
// transaccional: una oferta que falla se loguea y se sigue con la
// próxima; aceptar siempre revalida disponibilidad.
type Optimizer struct {
	repo   domain.Repository
	sender notify.Sender
	loc    *time.Location
}

func NewOptimizer(repo domain.Repository, sender notify.Sender) *Optimizer {
	return &Optimizer{
		repo:   repo,
		sender: sender,
		loc:    timezone.Location(""),
	}
}

func (o *Optimizer) Run(ctx context.Context, freed FreedSlot) OfferSummary {
	var summary OfferSummary

	o.offerToWaitlist(ctx, freed, &summary)
	o.offerToAdvancePool(ctx, freed, &summary)

	metrics.ReclamationOffers.Add(float64(summary.OffersSent))
	return summary
}

// offerToWaitlist: entradas activas y no notificadas cuyo rango de
// fechas contiene la fecha liberada, refinadas por servicio y franja
// horaria cuando están cargadas. FIFO por creación.
func (o *Optimizer) offerToWaitlist(ctx context.Context, freed FreedSlot, summary *OfferSummary) {
	entries, err := o.repo.ListWaitlistCandidates(ctx, freed.Date)
	if err != nil {
		log.Println("reclamation: waitlist query error:", err)
		return
	}

	freedSet := make(map[uint]bool, len(freed.ServiceIDs))
	for _, id := range freed.ServiceIDs {
		freedSet[id] = true
	}

	for _, entry := range entries {
		if entry.ClientID == freed.ClientID {
			continue
		}
		if entry.ServiceID != 0 && !freedSet[entry.ServiceID] {
			continue
		}
		if entry.TimeFrom != "" && freed.StartTime < entry.TimeFrom {
			continue
		}
		if entry.TimeTo != "" && freed.StartTime > entry.TimeTo {
			continue
		}

		payload := OfferPayload{
			Kind:            "waitlist",
			Date:            freed.Date,
			StartTime:       freed.StartTime,
			ServiceIDs:      []uint{entry.ServiceID},
			StaffID:         freed.StaffID,
			WaitlistEntryID: entry.ID,
		}

		if err := o.createOffer(ctx, entry.ClientID, entry.Client.Email, payload); err != nil {
			log.Println("reclamation: waitlist offer error:", err)
			continue
		}

		// marcado para no ofrecerle dos veces el mismo hueco
		if err := o.repo.MarkWaitlistNotified(ctx, entry.ID); err != nil {
			log.Println("reclamation: notified flag error:", err)
		}

		summary.OffersSent++
		summary.Recipients = append(summary.Recipients, entry.ClientID)
	}
}

// offerToAdvancePool: turnos confirmados de otros clientes, con algún
// servicio liberado, programados estrictamente después de la fecha
// liberada. Pueden adelantarse al hueco.
func (o *Optimizer) offerToAdvancePool(ctx context.Context, freed FreedSlot, summary *OfferSummary) {
	aps, err := o.repo.ListAdvanceCandidates(ctx, freed.ServiceIDs, freed.Date, freed.ClientID)
	if err != nil {
		log.Println("reclamation: advance query error:", err)
		return
	}

	for _, ap := range aps {
		payload := OfferPayload{
			Kind:          "advance",
			Date:          freed.Date,
			StartTime:     freed.StartTime,
			ServiceIDs:    detailServiceIDs(ap.Details),
			StaffID:       ap.StaffID,
			AppointmentID: ap.ID,
		}

		if err := o.createOffer(ctx, ap.ClientID, ap.Client.Email, payload); err != nil {
			log.Println("reclamation: advance offer error:", err)
			continue
		}

		summary.OffersSent++
		summary.Recipients = append(summary.Recipients, ap.ClientID)
	}
}

// createOffer persiste la notificación con su token (sincrónico: el
// token tiene que existir al responder) y manda el mail como mejor
// esfuerzo.
func (o *Optimizer) createOffer(ctx context.Context, clientID uint, email string, payload OfferPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf(
		"Se liberó un turno el %s a las %s. Aceptalo desde la app antes de que lo tome otro cliente.",
		payload.Date, payload.StartTime,
	)

	n := &models.Notification{
		ClientID:     &clientID,
		Title:        "¡Se liberó un turno!",
		Message:      msg,
		Kind:         models.NotifAlert,
		OriginEntity: "turno",
		OfferToken:   uuid.NewString(),
		OfferPayload: string(raw),
	}

	if err := o.repo.CreateNotification(ctx, n); err != nil {
		return err
	}

	if email != "" {
		if err := o.sender.Send(email, n.Title, msg); err != nil {
			log.Println("reclamation: mail error:", err)
		}
	}

	return nil
}
