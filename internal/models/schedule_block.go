package models

import "time"

// ScheduleBlock suspende la disponibilidad normal durante un intervalo.
// StaffID nulo bloquea el salón entero. Invariante: EndAt > StartAt.
type ScheduleBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID *uint `gorm:"index" json:"staff_id"`
	Staff   *User `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff,omitempty"`

	StartAt time.Time `gorm:"index;not null" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	Reason   string `gorm:"size:255" json:"reason"`
	WholeDay bool   `gorm:"default:false" json:"whole_day"`

	CreatedAt time.Time `json:"created_at"`
}
