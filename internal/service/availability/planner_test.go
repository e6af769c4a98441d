package availability

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// 2025-06-02 - понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func mondayWindow() []*domain.AvailabilityWindow {
	return []*domain.AvailabilityWindow{
		{ProfessionalID: 7, DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"},
	}
}

func times(slots []domain.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Date.Format(domain.DateFormat)+" "+s.StartTime.String())
	}
	return out
}

func TestFreeSlots_HourlyGridRegardlessOfDuration(t *testing.T) {
	now := monday.Add(-24 * time.Hour)

	got := slices.Collect(FreeSlots(mondayWindow(), nil, 90, monday, 1, now, time.UTC))

	assert.Equal(t, []string{"2025-06-02 09:00", "2025-06-02 10:00", "2025-06-02 11:00"}, times(got))
	for _, s := range got {
		assert.Equal(t, 90, s.DurationMinutes)
	}
}

func TestFreeSlots_SkipsBusy(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	busy := []domain.BusySlot{{Date: monday, Time: "10:00"}}

	got := slices.Collect(FreeSlots(mondayWindow(), busy, 60, monday, 1, now, time.UTC))

	assert.Equal(t, []string{"2025-06-02 09:00", "2025-06-02 11:00"}, times(got))
}

func TestFreeSlots_OnlyStrictlyFuture(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	got := slices.Collect(FreeSlots(mondayWindow(), nil, 60, monday, 1, now, time.UTC))

	assert.Equal(t, []string{"2025-06-02 11:00"}, times(got))
}

func TestFreeSlots_UsesLocation(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	// 12:30 UTC = 09:30 по местному времени
	now := time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC)

	got := slices.Collect(FreeSlots(mondayWindow(), nil, 60, monday, 1, now, loc))

	assert.Equal(t, []string{"2025-06-02 10:00", "2025-06-02 11:00"}, times(got))
}

func TestFreeSlots_HorizonAndDaysWithoutWindow(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	windows := append(mondayWindow(), &domain.AvailabilityWindow{DayOfWeek: 2, StartTime: "14:00", EndTime: "15:30"})

	got := slices.Collect(FreeSlots(windows, nil, 60, monday, 8, now, time.UTC))

	assert.Equal(t, []string{
		"2025-06-02 09:00", "2025-06-02 10:00", "2025-06-02 11:00",
		"2025-06-04 14:00", "2025-06-04 15:00",
		"2025-06-09 09:00", "2025-06-09 10:00", "2025-06-09 11:00",
	}, times(got))
}

func TestFreeSlots_StopsEarly(t *testing.T) {
	now := monday.Add(-24 * time.Hour)

	var seen int
	for range FreeSlots(mondayWindow(), nil, 60, monday, 60, now, time.UTC) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestFreeSlots_LateWindowDoesNotOverflow(t *testing.T) {
	now := monday.Add(-24 * time.Hour)
	windows := []*domain.AvailabilityWindow{{DayOfWeek: 0, StartTime: "22:00", EndTime: "23:59"}}

	got := slices.Collect(FreeSlots(windows, nil, 60, monday, 1, now, time.UTC))

	assert.Equal(t, []string{"2025-06-02 22:00", "2025-06-02 23:00"}, times(got))
}

func TestValidateSlot(t *testing.T) {
	windows := mondayWindow()

	assert.NoError(t, ValidateSlot(windows, monday, "09:00"))
	assert.NoError(t, ValidateSlot(windows, monday, "11:59"))
	assert.ErrorIs(t, ValidateSlot(windows, monday, "12:00"), domain.ErrSlotUnavailable)
	assert.ErrorIs(t, ValidateSlot(windows, monday, "08:59"), domain.ErrSlotUnavailable)
	assert.ErrorIs(t, ValidateSlot(windows, monday.AddDate(0, 0, 1), types.TimeString("10:00")), domain.ErrSlotUnavailable)
}
