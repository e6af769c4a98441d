package domain

import (
	"time"

	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// Slot represents a candidate (date, start time) pair for a booking
type Slot struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// StartsAt returns the slot start instant in loc
func (s Slot) StartsAt(loc *time.Location) time.Time {
	return s.StartTime.On(s.Date, loc)
}

// BusySlot is a (date, time) already taken by an active booking
type BusySlot struct {
	Date time.Time
	Time types.TimeString
}

// Key returns a comparable key for set lookups
func (b BusySlot) Key() string {
	return b.Date.Format(DateFormat) + " " + b.Time.String()
}
