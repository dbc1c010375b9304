package models

import "time"

// Appointment es el turno. Nunca se borra físicamente: cancelado es
// terminal pero queda para auditoría y para el optimizador de recupero.
// (date, start_time, client) es único entre turnos no cancelados;
// la unicidad se refuerza en la capa de negocio antes de crear.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index:idx_client_slot" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StaffID *uint `json:"staff_id"`
	Staff   *User `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff,omitempty"`

	ResourceUnitID *uint         `json:"resource_unit_id"`
	ResourceUnit   *ResourceUnit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"resource_unit,omitempty"`

	// Fecha "2006-01-02" y horas "15:04" en el huso del salón.
	Date      string `gorm:"size:10;index;index:idx_client_slot" json:"date"`
	StartTime string `gorm:"size:5;index:idx_client_slot" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Status string `gorm:"size:20;default:'solicitado';index" json:"status"`

	ReprogramCount int `gorm:"default:0" json:"reprogram_count"`

	// Referencia externa al comprobante de seña (el archivo vive fuera).
	PaymentProofRef string     `gorm:"size:255" json:"payment_proof_ref"`
	PaymentDeadline *time.Time `json:"payment_deadline"`

	CancelReason string     `gorm:"size:255" json:"cancel_reason"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	Details []AppointmentDetail `gorm:"foreignKey:AppointmentID" json:"details"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentDetail congela precio y duración al momento de reservar.
// Un servicio aparece a lo sumo una vez por turno.
type AppointmentDetail struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;uniqueIndex:idx_appointment_service" json:"appointment_id"`

	ServiceID uint    `gorm:"uniqueIndex:idx_appointment_service" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`

	CreatedAt time.Time `json:"created_at"`
}
