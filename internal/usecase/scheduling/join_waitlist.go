package scheduling

import (
	"context"
	"time"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

type JoinWaitlistInput struct {
	ClientID  uint
	ServiceID uint
	DateFrom  string
	DateTo    string
	TimeFrom  string // opcional
	TimeTo    string // opcional
}

// JoinWaitlist anota al cliente para que se le ofrezcan los huecos que
// se liberen dentro de su ventana.
type JoinWaitlist struct {
	repo domain.Repository
}

func NewJoinWaitlist(repo domain.Repository) *JoinWaitlist {
	return &JoinWaitlist{repo: repo}
}

func (uc *JoinWaitlist) Execute(ctx context.Context, in JoinWaitlistInput) (*models.WaitlistEntry, error) {
	if _, err := time.Parse("2006-01-02", in.DateFrom); err != nil {
		return nil, httperr.ErrBusinessMsg("INVALID_DATE", "Formato de fecha inválido, use AAAA-MM-DD.")
	}
	if _, err := time.Parse("2006-01-02", in.DateTo); err != nil {
		return nil, httperr.ErrBusinessMsg("INVALID_DATE", "Formato de fecha inválido, use AAAA-MM-DD.")
	}
	if in.DateTo < in.DateFrom {
		return nil, httperr.ErrBusinessMsg("INVALID_DATE", "El rango de fechas está invertido.")
	}
	for _, hm := range []string{in.TimeFrom, in.TimeTo} {
		if hm == "" {
			continue
		}
		if _, err := time.Parse("15:04", hm); err != nil {
			return nil, httperr.ErrBusinessMsg("INVALID_TIME", "Formato de hora inválido, use HH:MM.")
		}
	}

	if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
		return nil, httperr.ErrBusinessMsg("CLIENT_NOT_FOUND", "El cliente no existe.")
	}
	if _, err := uc.repo.GetService(ctx, in.ServiceID); err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeServiceNotFound, "El servicio no existe.")
	}

	entry := &models.WaitlistEntry{
		ClientID:  in.ClientID,
		ServiceID: in.ServiceID,
		DateFrom:  in.DateFrom,
		DateTo:    in.DateTo,
		TimeFrom:  in.TimeFrom,
		TimeTo:    in.TimeTo,
		Active:    true,
	}

	if err := uc.repo.CreateWaitlistEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}
