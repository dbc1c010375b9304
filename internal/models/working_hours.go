package models

import "time"

// WorkingHours es una regla semanal recurrente de disponibilidad.
// StaffID nulo aplica a todo el personal. Puede haber varias reglas
// para el mismo día (turnos cortados).
type WorkingHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID *uint `gorm:"index" json:"staff_id"`
	Staff   *User `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff,omitempty"`

	// 0 = domingo ... 6 = sábado (convención de time.Weekday)
	Weekday int `gorm:"index" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	// Rango de vigencia opcional, "2006-01-02". Vacío = siempre vigente.
	ValidFrom  string `gorm:"size:10" json:"valid_from"`
	ValidUntil string `gorm:"size:10" json:"valid_until"`

	AllowsColorDesign bool `gorm:"default:true" json:"allows_color_design"`
	AllowsComplement  bool `gorm:"default:true" json:"allows_complement"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
