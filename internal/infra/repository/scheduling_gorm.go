package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Transacción
// --------------------------------------------------

func (r *SchedulingGormRepository) WithTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

// lockForUpdate agrega FOR UPDATE donde el dialecto lo soporta
// (sqlite de los tests no lo entiende).
func (r *SchedulingGormRepository) lockForUpdate(q *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "postgres" {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// --------------------------------------------------
// Policy
// --------------------------------------------------

func (r *SchedulingGormRepository) GetPolicy(ctx context.Context) (*models.Policy, error) {
	var p models.Policy
	if err := r.db.WithContext(ctx).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SchedulingGormRepository) SavePolicy(ctx context.Context, p *models.Policy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *SchedulingGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND active = ?", id, true).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *SchedulingGormRepository) GetServices(ctx context.Context, ids []uint) ([]models.Service, error) {
	var svcs []models.Service
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN ? AND active = ?", ids, true).
		Find(&svcs).Error; err != nil {
		return nil, err
	}
	return svcs, nil
}

func (r *SchedulingGormRepository) GetStaff(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role IN ? AND active = ?", id, []string{"staff", "admin"}, true).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *SchedulingGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// --------------------------------------------------
// Reglas y bloqueos
// --------------------------------------------------

func (r *SchedulingGormRepository) ListRulesForWeekday(ctx context.Context, weekday int) ([]models.WorkingHours, error) {
	var rules []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("weekday = ? AND active = ?", weekday, true).
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *SchedulingGormRepository) ListBlocksBetween(ctx context.Context, from, to time.Time) ([]models.ScheduleBlock, error) {
	var blocks []models.ScheduleBlock
	if err := r.db.WithContext(ctx).
		Where("start_at < ? AND end_at > ?", to, from).
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Recursos
// --------------------------------------------------

func (r *SchedulingGormRepository) ListRequirements(ctx context.Context, serviceIDs []uint) ([]models.ServiceRequirement, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}

	var reqs []models.ServiceRequirement
	if err := r.db.WithContext(ctx).
		Where("service_id IN ?", serviceIDs).
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *SchedulingGormRepository) CountOperationalUnits(ctx context.Context) (map[uint]int, error) {
	type row struct {
		ResourceTypeID uint
		Total          int
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.ResourceUnit{}).
		Select("resource_type_id, COUNT(*) AS total").
		Where("active = ? AND status IN ?", true, []string{models.UnitAvailable, models.UnitInUse}).
		Group("resource_type_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	units := make(map[uint]int, len(rows))
	for _, rw := range rows {
		units[rw.ResourceTypeID] = rw.Total
	}
	return units, nil
}

// --------------------------------------------------
// Turnos
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Service").
		Preload("Client").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) ListOccupyingForDate(ctx context.Context, date string, lock bool) ([]models.Appointment, error) {
	q := r.db.WithContext(ctx).
		Preload("Details").
		Where("date = ? AND status IN ?", date, domain.OccupyingStatuses()).
		Order("start_time ASC")

	if lock {
		q = r.lockForUpdate(q)
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) HasClientSlotDuplicate(
	ctx context.Context,
	clientID uint,
	date, start string,
	excludeID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"client_id = ? AND date = ? AND start_time = ? AND status <> ? AND id <> ?",
			clientID, date, start, string(domain.StatusCancelled), excludeID,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SchedulingGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulingGormRepository) ListAppointmentsForDate(ctx context.Context, date string) ([]models.Appointment, error) {
	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Details").
		Preload("Details.Service").
		Where("date = ?", date).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Service").
		Where("client_id = ?", clientID).
		Order("date DESC, start_time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) ListPendingAppointments(ctx context.Context) ([]models.Appointment, error) {
	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(domain.StatusRequested),
			string(domain.StatusAwaitingDeposit),
		}).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) CountByStatusBetween(ctx context.Context, from, to string) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS total").
		Where("date >= ? AND date <= ?", from, to).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Total
	}
	return counts, nil
}

// --------------------------------------------------
// Lista de espera
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *SchedulingGormRepository) ListWaitlistCandidates(ctx context.Context, date string) ([]models.WaitlistEntry, error) {
	var entries []models.WaitlistEntry
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"active = ? AND notified = ? AND date_from <= ? AND date_to >= ?",
			true, false, date, date,
		).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *SchedulingGormRepository) MarkWaitlistNotified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ?", id).
		Update("notified", true).Error
}

func (r *SchedulingGormRepository) DeactivateWaitlistEntry(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ?", id).
		Update("active", false).Error
}

func (r *SchedulingGormRepository) ListAdvanceCandidates(
	ctx context.Context,
	serviceIDs []uint,
	afterDate string,
	excludeClientID uint,
) ([]models.Appointment, error) {

	if len(serviceIDs) == 0 {
		return nil, nil
	}

	sub := r.db.
		Model(&models.AppointmentDetail{}).
		Select("appointment_id").
		Where("service_id IN ?", serviceIDs)

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Details").
		Where(
			"status = ? AND date > ? AND client_id <> ? AND id IN (?)",
			string(domain.StatusConfirmed), afterDate, excludeClientID, sub,
		).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Notificaciones
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *SchedulingGormRepository) GetOfferByToken(ctx context.Context, token string) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).
		Where("offer_token = ?", token).
		First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *SchedulingGormRepository) ConsumeOffer(ctx context.Context, id uint, when time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("consumed_at", when).Error
}

func (r *SchedulingGormRepository) ListStaffUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role IN ? AND active = ?", []string{"staff", "admin"}, true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
