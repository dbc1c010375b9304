package scheduling

import (
	"context"
	"time"

	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Transacción --------
	// WithTx ejecuta fn dentro de una transacción; el Repository que
	// recibe opera sobre ella. La secuencia leer-validar-escribir de
	// reservas y reprogramaciones corre siempre acá adentro.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// -------- Policy --------
	GetPolicy(ctx context.Context) (*models.Policy, error)
	SavePolicy(ctx context.Context, p *models.Policy) error

	// -------- Catálogo --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetServices(ctx context.Context, ids []uint) ([]models.Service, error)
	GetStaff(ctx context.Context, id uint) (*models.User, error)
	GetClient(ctx context.Context, id uint) (*models.Client, error)

	// -------- Reglas y bloqueos --------
	ListRulesForWeekday(ctx context.Context, weekday int) ([]models.WorkingHours, error)
	ListBlocksBetween(ctx context.Context, from, to time.Time) ([]models.ScheduleBlock, error)

	// -------- Recursos --------
	ListRequirements(ctx context.Context, serviceIDs []uint) ([]models.ServiceRequirement, error)
	CountOperationalUnits(ctx context.Context) (map[uint]int, error)

	// -------- Turnos --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	// ListOccupyingForDate trae los turnos ocupantes del día con sus
	// detalles; con lock toma FOR UPDATE para serializar la validación
	// contra la escritura.
	ListOccupyingForDate(ctx context.Context, date string, lock bool) ([]models.Appointment, error)
	HasClientSlotDuplicate(ctx context.Context, clientID uint, date, start string, excludeID uint) (bool, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	ListAppointmentsForDate(ctx context.Context, date string) ([]models.Appointment, error)
	ListAppointmentsForClient(ctx context.Context, clientID uint) ([]models.Appointment, error)
	ListPendingAppointments(ctx context.Context) ([]models.Appointment, error)
	CountByStatusBetween(ctx context.Context, from, to string) (map[string]int64, error)

	// -------- Lista de espera --------
	CreateWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error
	// ListWaitlistCandidates: entradas activas y no notificadas cuyo
	// rango de fechas contiene la fecha liberada, FIFO por creación.
	ListWaitlistCandidates(ctx context.Context, date string) ([]models.WaitlistEntry, error)
	MarkWaitlistNotified(ctx context.Context, id uint) error
	DeactivateWaitlistEntry(ctx context.Context, id uint) error

	// ListAdvanceCandidates: turnos confirmados de otros clientes que
	// incluyen alguno de los servicios liberados y caen estrictamente
	// después de la fecha liberada.
	ListAdvanceCandidates(ctx context.Context, serviceIDs []uint, afterDate string, excludeClientID uint) ([]models.Appointment, error)

	// -------- Notificaciones --------
	CreateNotification(ctx context.Context, n *models.Notification) error
	GetOfferByToken(ctx context.Context, token string) (*models.Notification, error)
	ConsumeOffer(ctx context.Context, id uint, when time.Time) error
	ListStaffUsers(ctx context.Context) ([]models.User, error)
}
