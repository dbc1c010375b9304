package scheduling

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BohemiaEstudio/salon-scheduler/internal/audit"
	dbpkg "github.com/BohemiaEstudio/salon-scheduler/internal/db"
	infraRepo "github.com/BohemiaEstudio/salon-scheduler/internal/infra/repository"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
	"github.com/BohemiaEstudio/salon-scheduler/internal/policy"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

// Entorno de integración sobre sqlite en memoria: mismo esquema y
// misma capa de repositorio que producción, sin postgres.
type testEnv struct {
	t  *testing.T
	db *gorm.DB

	repo     *infraRepo.SchedulingGormRepository
	policies *policy.Store
	notifier *notify.Dispatcher
	auditor  *audit.Dispatcher
	sender   notify.Sender
	loc      *time.Location
}

func newTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, dbpkg.Migrate(gdb))

	repo := infraRepo.NewSchedulingGormRepository(gdb)

	policies := policy.NewStore(repo)
	require.NoError(t, policies.Load(context.Background()))

	sender := notify.NoopSender{}

	return &testEnv{
		t:        t,
		db:       gdb,
		repo:     repo,
		policies: policies,
		notifier: notify.NewDispatcher(gdb, sender),
		auditor:  audit.NewDispatcher(audit.New(gdb)),
		sender:   sender,
		loc:      timezone.Location(""),
	}
}

// dateIn devuelve la fecha a N días de hoy en el huso del salón.
func (e *testEnv) dateIn(days int) string {
	return time.Now().In(e.loc).AddDate(0, 0, days).Format("2006-01-02")
}

// --------------------------------------------------
// Seeds
// --------------------------------------------------

func (e *testEnv) seedStaff(name string) uint {
	u := models.User{
		Name:         name,
		Email:        name + "@bohemiaestudio.com",
		PasswordHash: "x",
		Role:         models.RoleStaff,
		Active:       true,
	}
	require.NoError(e.t, e.db.Create(&u).Error)
	return u.ID
}

func (e *testEnv) seedClient(name string) uint {
	c := models.Client{Name: name, Email: name + "@example.com"}
	require.NoError(e.t, e.db.Create(&c).Error)
	return c.ID
}

func (e *testEnv) seedService(name string, durationMin int) uint {
	svc := models.Service{
		Name:        name,
		DurationMin: &durationMin,
		BasePrice:   1000,
		Active:      true,
	}
	require.NoError(e.t, e.db.Create(&svc).Error)
	return svc.ID
}

// seedRulesAllWeek abre el salón todos los días para que los tests no
// dependan del día en que corren.
func (e *testEnv) seedRulesAllWeek(staffID *uint, start, end string) {
	for wd := 0; wd < 7; wd++ {
		rule := models.WorkingHours{
			StaffID:           staffID,
			Weekday:           wd,
			StartTime:         start,
			EndTime:           end,
			AllowsColorDesign: true,
			AllowsComplement:  true,
			Active:            true,
		}
		require.NoError(e.t, e.db.Create(&rule).Error)
	}
}

func (e *testEnv) seedConfirmedAppointment(clientID uint, staffID *uint, serviceID uint, date, start, end string) uint {
	ap := models.Appointment{
		ClientID:  clientID,
		StaffID:   staffID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    "confirmado",
		Details:   []models.AppointmentDetail{{ServiceID: serviceID, DurationMin: 60}},
	}
	require.NoError(e.t, e.db.Create(&ap).Error)
	return ap.ID
}

// seedResourceType crea un tipo de recurso con unidades operativas y
// en mantenimiento, y lo declara requisito del servicio.
func seedResourceType(e *testEnv, name string, serviceID uint, operational, maintenance int) uint {
	rt := models.ResourceType{Name: name, Active: true}
	require.NoError(e.t, e.db.Create(&rt).Error)

	for i := 0; i < operational; i++ {
		unit := models.ResourceUnit{ResourceTypeID: rt.ID, Status: models.UnitAvailable, Active: true}
		require.NoError(e.t, e.db.Create(&unit).Error)
	}
	for i := 0; i < maintenance; i++ {
		unit := models.ResourceUnit{ResourceTypeID: rt.ID, Status: models.UnitMaintenance, Active: true}
		require.NoError(e.t, e.db.Create(&unit).Error)
	}

	req := models.ServiceRequirement{
		ServiceID:      serviceID,
		ResourceTypeID: rt.ID,
		Required:       true,
		MinUnits:       1,
	}
	require.NoError(e.t, e.db.Create(&req).Error)

	return rt.ID
}

func (e *testEnv) appointment(id uint) *models.Appointment {
	var ap models.Appointment
	require.NoError(e.t, e.db.Preload("Details").First(&ap, id).Error)
	return &ap
}
