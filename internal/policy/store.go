package policy

import (
	"context"
	"sync"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
)

// Snapshot es la vista inmutable de la política global que consume el
// motor. Se carga al arrancar y se refresca cuando un admin la edita;
// nadie del motor lee la fila directamente.
type Snapshot struct {
	SlotGranularityMin   int
	BookingHorizonDays   int
	DepositAmount        float64
	DepositDeadlineHours int
	MaxReprogramCount    int
	CancelCutoffHours    int
}

type Store struct {
	repo domain.Repository

	mu  sync.RWMutex
	cur Snapshot
}

func NewStore(repo domain.Repository) *Store {
	return &Store{repo: repo}
}

// Load lee la fila de configuración. La siembra inicial ocurre en la
// migración (internal/db); acá solo se exige que exista.
func (s *Store) Load(ctx context.Context) error {
	return s.Refresh(ctx)
}

func (s *Store) Refresh(ctx context.Context) error {
	p, err := s.repo.GetPolicy(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = Snapshot{
		SlotGranularityMin:   p.SlotGranularityMin,
		BookingHorizonDays:   p.BookingHorizonDays,
		DepositAmount:        p.DepositAmount,
		DepositDeadlineHours: p.DepositDeadlineHours,
		MaxReprogramCount:    p.MaxReprogramCount,
		CancelCutoffHours:    p.CancelCutoffHours,
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}
