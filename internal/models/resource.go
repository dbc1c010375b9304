package models

import "time"

// Estados operativos de una unidad física
const (
	UnitAvailable   = "disponible"
	UnitInUse       = "en_uso"
	UnitMaintenance = "mantenimiento"
	UnitRetired     = "baja"
)

// ResourceType es una categoría de equipamiento físico
// (ej. "estación de trabajo", "lavacabezas").
type ResourceType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ResourceUnit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ResourceTypeID uint         `gorm:"index" json:"resource_type_id"`
	ResourceType   ResourceType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"resource_type"`

	Label  string `gorm:"size:100" json:"label"`
	Status string `gorm:"size:20;default:'disponible'" json:"status"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Operational indica si la unidad cuenta para la capacidad del tipo.
func (u ResourceUnit) Operational() bool {
	return u.Active && (u.Status == UnitAvailable || u.Status == UnitInUse)
}

// ServiceRequirement declara qué tipos de recurso consume un servicio.
// Un servicio sin requisitos no está limitado por recursos físicos.
type ServiceRequirement struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"index;uniqueIndex:idx_service_resource" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	ResourceTypeID uint         `gorm:"uniqueIndex:idx_service_resource" json:"resource_type_id"`
	ResourceType   ResourceType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"resource_type"`

	Required bool `gorm:"default:true" json:"required"`
	MinUnits int  `gorm:"default:1" json:"min_units"`

	CreatedAt time.Time `json:"created_at"`
}
