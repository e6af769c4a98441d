package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// Type routing key события
type Type string

const (
	TurnoCreated   Type = "turno.created"
	TurnoConfirmed Type = "turno.confirmed"
	TurnoRejected  Type = "turno.rejected"
	TurnoStarted   Type = "turno.started"
	TurnoModified  Type = "turno.modified"
	TurnoCancelled Type = "turno.cancelled"
	TurnoCompleted Type = "turno.completed"
	TurnoRated     Type = "turno.rated"
)

// Event конверт события бронирования
type Event struct {
	ID             string             `json:"id"`
	Type           Type               `json:"type"`
	OccurredAt     time.Time          `json:"occurred_at"`
	TurnoID        int64              `json:"turno_id"`
	ClientID       int64              `json:"client_id"`
	ProfessionalID int64              `json:"professional_id"`
	ServiceID      int64              `json:"service_id"`
	Status         domain.TurnoStatus `json:"status"`
	Date           string             `json:"date"`
	Time           string             `json:"time"`
	FinalPrice     decimal.Decimal    `json:"final_price"`
	ActorID        *int64             `json:"actor_id,omitempty"`
	Score          *int               `json:"score,omitempty"`
}

// NewTurnoEvent собирает событие по текущему состоянию бронирования
func NewTurnoEvent(t Type, turno *domain.Turno, actorID *int64, at time.Time) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           t,
		OccurredAt:     at.UTC(),
		TurnoID:        turno.ID,
		ClientID:       turno.ClientID,
		ProfessionalID: turno.ProfessionalID,
		ServiceID:      turno.ServiceID,
		Status:         turno.Status,
		Date:           turno.Date.Format(domain.DateFormat),
		Time:           turno.Time.String(),
		FinalPrice:     turno.FinalPrice,
		ActorID:        actorID,
	}
}

// WithScore добавляет оценку к событию turno.rated
func (e Event) WithScore(score int) Event {
	e.Score = &score
	return e
}
