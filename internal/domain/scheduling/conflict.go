package scheduling

import (
	"time"

	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

// DayContext reúne todo lo que hace falta para validar candidatos de un
// día: turnos ocupantes (con detalles precargados), bloqueos vigentes,
// capacidad operativa por tipo de recurso y requisitos por servicio.
// Se arma una vez por consulta y las validaciones son puras.
type DayContext struct {
	Date time.Time
	Loc  *time.Location
	Now  time.Time

	// Turnos en estado ocupante para la fecha, de todo el personal.
	Appointments []models.Appointment

	// Bloqueos que tocan el día (de staff o de todo el salón).
	Blocks []models.ScheduleBlock

	// Unidades operativas por tipo de recurso.
	UnitsByType map[uint]int

	// Requisitos obligatorios por servicio involucrado.
	Requirements map[uint][]models.ServiceRequirement
}

// SlotAvailable corre las tres verificaciones independientes sobre un
// candidato: choque de agenda del staff, bloqueos y capacidad de
// recursos; además exige inicio estrictamente futuro. excludeID
// descarta la ocupación previa del propio turno al reprogramar.
func (d *DayContext) SlotAvailable(start string, durationMin int, staffID *uint, serviceIDs []uint, excludeID uint) bool {
	end := AddMinutesHM(start, durationMin)
	day := d.Date.Format("2006-01-02")

	startAt, err := CombineDateTime(day, start, d.Loc)
	if err != nil {
		return false
	}
	endAt := startAt.Add(time.Duration(durationMin) * time.Minute)

	if !startAt.After(d.Now) {
		return false
	}

	if d.staffConflict(start, end, staffID, excludeID) {
		return false
	}
	if d.blockConflict(startAt, endAt, staffID) {
		return false
	}
	if d.resourceConflict(start, end, serviceIDs, excludeID) {
		return false
	}

	return true
}

// staffConflict: un turno ocupante del mismo staff que se superpone.
// Un turno sin staff asignado ocupa la agenda de todo el salón, igual
// que un candidato sin staff.
func (d *DayContext) staffConflict(start, end string, staffID *uint, excludeID uint) bool {
	for _, ap := range d.Appointments {
		if ap.ID == excludeID || !Occupying(ap.Status) {
			continue
		}
		if staffID != nil && ap.StaffID != nil && *ap.StaffID != *staffID {
			continue
		}
		if OverlapsHM(start, end, ap.StartTime, ap.EndTime) {
			return true
		}
	}
	return false
}

func (d *DayContext) blockConflict(startAt, endAt time.Time, staffID *uint) bool {
	for _, b := range d.Blocks {
		if b.StaffID != nil && staffID != nil && *b.StaffID != *staffID {
			continue
		}

		bs, be := b.StartAt, b.EndAt
		if b.WholeDay {
			bs = time.Date(bs.Year(), bs.Month(), bs.Day(), 0, 0, 0, 0, d.Loc)
			be = bs.AddDate(0, 0, 1)
		}

		if Overlaps(startAt, endAt, bs, be) {
			return true
		}
	}
	return false
}

// resourceConflict: para cada tipo de recurso requerido, las unidades
// operativas deben cubrir lo ya comprometido por turnos superpuestos
// más lo que consumiría esta reserva. Sin requisitos declarados el
// servicio no está limitado por recursos.
func (d *DayContext) resourceConflict(start, end string, serviceIDs []uint, excludeID uint) bool {
	needed := d.unitsNeeded(serviceIDs)
	if len(needed) == 0 {
		return false
	}

	for typeID, need := range needed {
		committed := 0
		for _, ap := range d.Appointments {
			if ap.ID == excludeID || !Occupying(ap.Status) {
				continue
			}
			if !OverlapsHM(start, end, ap.StartTime, ap.EndTime) {
				continue
			}
			for _, det := range ap.Details {
				committed += d.requirementUnits(det.ServiceID, typeID)
			}
		}

		if d.UnitsByType[typeID] < committed+need {
			return true
		}
	}

	return false
}

func (d *DayContext) unitsNeeded(serviceIDs []uint) map[uint]int {
	needed := make(map[uint]int)
	for _, sid := range serviceIDs {
		for _, req := range d.Requirements[sid] {
			if !req.Required {
				continue
			}
			units := req.MinUnits
			if units <= 0 {
				units = 1
			}
			needed[req.ResourceTypeID] += units
		}
	}
	return needed
}

func (d *DayContext) requirementUnits(serviceID, typeID uint) int {
	for _, req := range d.Requirements[serviceID] {
		if req.ResourceTypeID != typeID {
			continue
		}
		if req.MinUnits > 0 {
			return req.MinUnits
		}
		return 1
	}
	return 0
}
