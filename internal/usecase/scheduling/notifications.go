package scheduling

import (
	"context"
	"fmt"
	"log"
	"strings"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
)

// Avisos in-app por cambio de estado, en el mismo espíritu que los
// mensajes originales del salón.

func notifyClient(d *notify.Dispatcher, ap *models.Appointment, title, message, kind string) {
	clientID := ap.ClientID
	apID := ap.ID

	d.Dispatch(notify.Event{
		Notification: models.Notification{
			ClientID:     &clientID,
			Title:        title,
			Message:      message,
			Kind:         kind,
			OriginEntity: "turno",
			OriginID:     &apID,
		},
		Email:        ap.Client.Email,
		EmailSubject: title,
		EmailBody:    message,
	})
}

func notifyStaffNewRequest(ctx context.Context, repo domain.Repository, d *notify.Dispatcher, ap *models.Appointment, serviceNames []string) {
	staff, err := repo.ListStaffUsers(ctx)
	if err != nil {
		log.Println("notify staff error:", err)
		return
	}

	msg := fmt.Sprintf(
		"%s solicitó %s el %s a las %s.",
		ap.Client.Name, strings.Join(serviceNames, ", "), ap.Date, ap.StartTime,
	)

	apID := ap.ID
	for _, u := range staff {
		userID := u.ID
		d.Dispatch(notify.Event{
			Notification: models.Notification{
				UserID:       &userID,
				Title:        "Nuevo Turno Solicitado",
				Message:      msg,
				Kind:         models.NotifAlert,
				OriginEntity: "turno",
				OriginID:     &apID,
			},
		})
	}
}

func serviceNames(services []models.Service) []string {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return names
}
