package models

import "time"

// WaitlistEntry es un pedido de aviso cuando se libere un turno.
// Orden FIFO por CreatedAt dentro de la ventana de fechas que matchea.
type WaitlistEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	// Rango de fechas deseado, "2006-01-02"
	DateFrom string `gorm:"size:10;not null" json:"date_from"`
	DateTo   string `gorm:"size:10;not null" json:"date_to"`

	// Franja horaria opcional, "15:04". Vacío = cualquier hora.
	TimeFrom string `gorm:"size:5" json:"time_from"`
	TimeTo   string `gorm:"size:5" json:"time_to"`

	Active   bool `gorm:"default:true;index" json:"active"`
	Notified bool `gorm:"default:false" json:"notified"`

	CreatedAt time.Time `json:"created_at"`
}
