package models

import "time"

// Policy es la configuración global del motor de agenda. Existe una
// sola fila, sembrada en el bootstrap; solo se actualiza, nunca se
// recrea. El motor la consume vía internal/policy, no directamente.
type Policy struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SlotGranularityMin   int     `gorm:"default:60" json:"slot_granularity_min"`
	BookingHorizonDays   int     `gorm:"default:30" json:"booking_horizon_days"`
	DepositAmount        float64 `gorm:"default:0" json:"deposit_amount"`
	DepositDeadlineHours int     `gorm:"default:24" json:"deposit_deadline_hours"`
	MaxReprogramCount    int     `gorm:"default:1" json:"max_reprogram_count"`
	CancelCutoffHours    int     `gorm:"default:48" json:"cancel_cutoff_hours"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPolicy: valores iniciales sembrados en la migración.
func DefaultPolicy() *Policy {
	return &Policy{
		SlotGranularityMin:   60,
		BookingHorizonDays:   30,
		DepositAmount:        0,
		DepositDeadlineHours: 24,
		MaxReprogramCount:    1,
		CancelCutoffHours:    48,
	}
}
