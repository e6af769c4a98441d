package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/servihogar-turnos/pkg/ptr"
)

var allStatuses = []TurnoStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

func TestCanTransition_AllowedEdges(t *testing.T) {
	allowed := map[[2]TurnoStatus]bool{
		{StatusPending, StatusConfirmed}:    true,
		{StatusPending, StatusCancelled}:    true,
		{StatusConfirmed, StatusInProgress}: true,
		{StatusConfirmed, StatusCancelled}:  true,
		{StatusInProgress, StatusCompleted}: true,
		{StatusInProgress, StatusCancelled}: true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[[2]TurnoStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, from := range []TurnoStatus{StatusCompleted, StatusCancelled} {
		assert.True(t, from.IsTerminal())
		for _, to := range allStatuses {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTurno_Guards(t *testing.T) {
	turno := &Turno{Status: StatusConfirmed}
	assert.True(t, turno.CanBeModified())
	assert.True(t, turno.CanBeCancelled())
	assert.True(t, turno.IsActive())

	turno.Status = StatusInProgress
	assert.False(t, turno.CanBeModified())
	assert.True(t, turno.CanBeCancelled())

	turno.Status = StatusCompleted
	assert.False(t, turno.CanBeCancelled())
	assert.False(t, turno.IsActive())

	assert.False(t, TurnoStatus("archived").IsValid())
}

func TestTurno_SameSlot(t *testing.T) {
	turno := &Turno{
		ProfessionalID: 7,
		Date:           time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:           "10:00",
	}

	assert.True(t, turno.SameSlot(7, time.Date(2025, 6, 2, 15, 0, 0, 0, time.Local), "10:00"))
	assert.False(t, turno.SameSlot(8, turno.Date, "10:00"))
	assert.False(t, turno.SameSlot(7, turno.Date, "11:00"))
}

func TestActor_Permissions(t *testing.T) {
	turno := &Turno{ClientID: 1, ProfessionalID: 2}

	assert.True(t, Actor{UserID: 1, Role: RoleClient}.IsClientOf(turno))
	assert.False(t, Actor{UserID: 1, Role: RoleProfessional}.IsClientOf(turno))
	assert.True(t, Actor{UserID: 2, Role: RoleProfessional}.IsProfessionalOf(turno))
	assert.True(t, Actor{UserID: 99, Role: RoleAdmin}.CanView(turno))
	assert.False(t, Actor{UserID: 3, Role: RoleClient}.CanView(turno))
}

func TestProfessional_Offers(t *testing.T) {
	owned := &Service{ID: 10, ProfessionalID: ptr.Ptr(int64(5))}
	listed := &Service{ID: 11}
	other := &Service{ID: 12}

	pro := &Professional{ID: 5, ServiceIDs: []int64{11}}

	assert.True(t, pro.Offers(owned))
	assert.True(t, pro.Offers(listed))
	assert.False(t, pro.Offers(other))
}

func TestAvailabilityWindow(t *testing.T) {
	w := &AvailabilityWindow{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"}

	assert.True(t, w.IsValid())
	assert.True(t, w.Contains("09:00"))
	assert.True(t, w.Contains("11:30"))
	assert.False(t, w.Contains("12:00"))
	assert.False(t, w.Contains("08:59"))

	assert.False(t, (&AvailabilityWindow{DayOfWeek: 7, StartTime: "09:00", EndTime: "12:00"}).IsValid())
	assert.False(t, (&AvailabilityWindow{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"}).IsValid())
}

func TestDayOfWeekIndex(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DayOfWeekIndex(monday))
	assert.Equal(t, 6, DayOfWeekIndex(monday.AddDate(0, 0, 6)))

	windows := []*AvailabilityWindow{{DayOfWeek: 0}, {DayOfWeek: 2}}
	assert.NotNil(t, WindowFor(windows, monday))
	assert.Nil(t, WindowFor(windows, monday.AddDate(0, 0, 1)))
}
