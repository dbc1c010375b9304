package notify

import (
	"log"

	"gorm.io/gorm"

	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

// Event es un aviso in-app por cambio de estado de turno, con mail
// opcional. Las ofertas de recupero NO pasan por acá: se persisten
// sincrónicamente porque su token debe existir al responder.
type Event struct {
	Notification models.Notification

	// Mail opcional, mejor esfuerzo
	Email        string
	EmailSubject string
	EmailBody    string
}

type Dispatcher struct {
	db     *gorm.DB
	sender Sender
	queue  chan Event
}

func NewDispatcher(db *gorm.DB, sender Sender) *Dispatcher {
	d := &Dispatcher{
		db:     db,
		sender: sender,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.db.Create(&ev.Notification).Error; err != nil {
			log.Println("notify error:", err)
			continue
		}

		if ev.Email != "" {
			if err := d.sender.Send(ev.Email, ev.EmailSubject, ev.EmailBody); err != nil {
				log.Println("notify mail error:", err)
			}
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// cola llena: se descarta el aviso, nunca se frena la API
		log.Println("notify queue full, dropping event")
	}
}
