package domain

import (
	"time"

	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// AvailabilityWindow is a recurring weekly time range of a professional.
// DayOfWeek: 0 = Monday ... 6 = Sunday.
type AvailabilityWindow struct {
	ID             int64
	ProfessionalID int64
	DayOfWeek      int
	StartTime      types.TimeString
	EndTime        types.TimeString
}

// Contains returns true if t lies in [start, end)
func (w *AvailabilityWindow) Contains(t types.TimeString) bool {
	m := t.Minutes()
	return m >= 0 && m >= w.StartTime.Minutes() && m < w.EndTime.Minutes()
}

// IsValid returns true if start < end and the weekday is in range
func (w *AvailabilityWindow) IsValid() bool {
	return w.DayOfWeek >= 0 && w.DayOfWeek <= 6 &&
		w.StartTime.Validate() == nil && w.EndTime.Validate() == nil &&
		w.StartTime.IsBefore(w.EndTime)
}

// DayOfWeekIndex maps a date to 0 = Monday ... 6 = Sunday
func DayOfWeekIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WindowFor returns the window for the weekday of date, or nil
func WindowFor(windows []*AvailabilityWindow, date time.Time) *AvailabilityWindow {
	day := DayOfWeekIndex(date)
	for _, w := range windows {
		if w.DayOfWeek == day {
			return w
		}
	}
	return nil
}
