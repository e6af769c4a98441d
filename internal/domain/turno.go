package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// TurnoStatus represents the status of a booking
type TurnoStatus string

const (
	StatusPending    TurnoStatus = "pending"
	StatusConfirmed  TurnoStatus = "confirmed"
	StatusInProgress TurnoStatus = "in_progress"
	StatusCompleted  TurnoStatus = "completed"
	StatusCancelled  TurnoStatus = "cancelled"
)

// transitions допустимые переходы статусов; терминальные статусы без выходов
var transitions = map[TurnoStatus][]TurnoStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
}

// IsValid returns true for known statuses
func (s TurnoStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal returns true for completed and cancelled
func (s TurnoStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition returns true if from -> to is an allowed edge of the state machine
func CanTransition(from, to TurnoStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Turno represents a booking of a service with a professional at a date and time
type Turno struct {
	ID             int64
	ClientID       int64
	ProfessionalID int64
	ServiceID      int64
	PromotionID    *int64
	Date           time.Time
	Time           types.TimeString
	Address        string
	Latitude       *float64
	Longitude      *float64
	Observations   *string
	Status         TurnoStatus

	// Price snapshot frozen at creation
	BasePrice  decimal.Decimal
	Discount   decimal.Decimal
	FinalPrice decimal.Decimal

	CancelledBy        *int64
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (t *Turno) IsActive() bool {
	return !t.Status.IsTerminal()
}

// CanBeModified returns true if date, time, address or observations may change
func (t *Turno) CanBeModified() bool {
	return t.Status == StatusPending || t.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking may move to cancelled
func (t *Turno) CanBeCancelled() bool {
	return CanTransition(t.Status, StatusCancelled)
}

// SameSlot returns true if the booking occupies the given professional slot
func (t *Turno) SameSlot(professionalID int64, date time.Time, at types.TimeString) bool {
	return t.ProfessionalID == professionalID && SameDate(t.Date, date) && t.Time.Equal(at)
}

// SameDate compares calendar dates ignoring time and location
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
