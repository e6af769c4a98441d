package availability

import (
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// FreeSlots лениво перечисляет свободные слоты на horizonDays дней начиная с from.
// Для каждого дня берется окно его дня недели, слоты идут от начала окна по часовой
// сетке (domain.SlotStepMinutes) независимо от длительности услуги, пока начало слота
// раньше конца окна. Слот пропускается, если он занят
// активным бронированием (точное совпадение даты и времени) или не позже now.
// Пересечение длительностей с соседними бронированиями не проверяется.
func FreeSlots(
	windows []*domain.AvailabilityWindow,
	busy []domain.BusySlot,
	durationMinutes int,
	from time.Time,
	horizonDays int,
	now time.Time,
	loc *time.Location,
) iter.Seq[domain.Slot] {
	taken := make(map[string]struct{}, len(busy))
	for _, b := range busy {
		taken[b.Key()] = struct{}{}
	}

	start := domain.DateOnly(from)

	return func(yield func(domain.Slot) bool) {
		for day := 0; day < horizonDays; day++ {
			date := start.AddDate(0, 0, day)

			w := domain.WindowFor(windows, date)
			if w == nil {
				continue
			}

			end := w.EndTime.Minutes()
			for m := w.StartTime.Minutes(); m >= 0 && m < end; m += domain.SlotStepMinutes {
				at, err := types.NewTimeStringFromMinutes(m)
				if err != nil {
					break
				}

				slot := domain.Slot{Date: date, StartTime: at, DurationMinutes: durationMinutes}
				if _, ok := taken[domain.BusySlot{Date: date, Time: at}.Key()]; ok {
					continue
				}
				if !slot.StartsAt(loc).After(now) {
					continue
				}

				if !yield(slot) {
					return
				}
			}
		}
	}
}

// ValidateSlot проверяет, что время at попадает в окно расписания на дату date
func ValidateSlot(windows []*domain.AvailabilityWindow, date time.Time, at types.TimeString) error {
	w := domain.WindowFor(windows, date)
	if w == nil {
		return fmt.Errorf("%w: professional does not work on %s", domain.ErrSlotUnavailable, date.Format(domain.DateFormat))
	}
	if !w.Contains(at) {
		return fmt.Errorf("%w: %s is outside %s-%s", domain.ErrSlotUnavailable, at, w.StartTime, w.EndTime)
	}
	return nil
}
