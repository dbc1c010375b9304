package models

import "time"

const (
	NotifInfo  = "informativa"
	NotifAlert = "alerta"

	NotifPending = "pendiente"
	NotifRead    = "leida"
)

// Notification cubre los avisos in-app de cambios de estado y las
// ofertas de recupero de turnos. Una oferta lleva OfferToken y un
// payload JSON con lo necesario para aceptarla después.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Destinatario: staff (UserID) o cliente (ClientID)
	UserID   *uint `gorm:"index" json:"user_id"`
	ClientID *uint `gorm:"index" json:"client_id"`

	Title   string `gorm:"size:100;not null" json:"title"`
	Message string `gorm:"size:500" json:"message"`

	Kind    string `gorm:"size:20;default:'informativa'" json:"kind"`
	Channel string `gorm:"size:20;default:'app'" json:"channel"`
	Status  string `gorm:"size:20;default:'pendiente'" json:"status"`

	OriginEntity string `gorm:"size:50" json:"origin_entity"`
	OriginID     *uint  `json:"origin_id"`

	OfferToken   string     `gorm:"size:36;index" json:"offer_token,omitempty"`
	OfferPayload string     `gorm:"type:text" json:"offer_payload,omitempty"`
	ConsumedAt   *time.Time `json:"consumed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
