package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/config"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate corre el automigrate y asegura la fila única de política.
// Lo comparten el arranque real y los tests con sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Client{},
		&models.User{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.WorkingHours{},
		&models.ScheduleBlock{},
		&models.ResourceType{},
		&models.ResourceUnit{},
		&models.ServiceRequirement{},
		&models.Appointment{},
		&models.AppointmentDetail{},
		&models.WaitlistEntry{},
		&models.Notification{},
		&models.Policy{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// singleton: si no existe, se crea con los valores por defecto
	var count int64
	if err := db.Model(&models.Policy{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(models.DefaultPolicy()).Error; err != nil {
			return err
		}
	}

	return nil
}
