// Package turnotest provides an in-memory turno store with the same
// conflict semantics as the Postgres repository, for use in tests.
package turnotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	turnoRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/turno"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

// Store хранилище бронирований в памяти
// Активный слот (professional, date, time) уникален, как частичный индекс в БД
type Store struct {
	mu     sync.Mutex
	nextID int64
	turnos map[int64]*domain.Turno
	now    func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		turnos: make(map[int64]*domain.Turno),
		now:    time.Now,
	}
}

// Put кладет бронирование как есть и возвращает его ID
func (s *Store) Put(t *domain.Turno) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		s.nextID++
		t.ID = s.nextID
	} else if t.ID > s.nextID {
		s.nextID = t.ID
	}
	cp := *t
	s.turnos[t.ID] = &cp
	return t.ID
}

// Create создает бронирование, нарушение уникальности активного слота дает ErrSlotTaken
func (s *Store) Create(_ context.Context, t *domain.Turno) (*domain.Turno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.IsActive() && s.activeAt(t.ProfessionalID, t.Date, t.Time, 0) {
		return nil, turnoRepo.ErrSlotTaken
	}

	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	s.turnos[t.ID] = &cp
	return t, nil
}

// GetByID возвращает копию бронирования
func (s *Store) GetByID(_ context.Context, id int64) (*domain.Turno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.turnos[id]
	if !ok {
		return nil, turnoRepo.ErrTurnoNotFound
	}
	cp := *t
	return &cp, nil
}

// GetActiveByProfessional активные бронирования профессионала в диапазоне дат
func (s *Store) GetActiveByProfessional(_ context.Context, professionalID int64, from, to time.Time) ([]*domain.Turno, error) {
	return s.filter(func(t *domain.Turno) bool {
		return t.ProfessionalID == professionalID && t.IsActive() && inRange(t.Date, &from, &to)
	}, nil, false), nil
}

// ListByClient бронирования клиента, новые сверху
func (s *Store) ListByClient(_ context.Context, clientID int64, f turnoRepo.ListFilter) ([]*domain.Turno, error) {
	return s.filter(func(t *domain.Turno) bool {
		return t.ClientID == clientID && matches(t, f)
	}, f.Status, true), nil
}

// ListByProfessional бронирования профессионала в хронологическом порядке
func (s *Store) ListByProfessional(_ context.Context, professionalID int64, f turnoRepo.ListFilter) ([]*domain.Turno, error) {
	return s.filter(func(t *domain.Turno) bool {
		return t.ProfessionalID == professionalID && matches(t, f)
	}, f.Status, false), nil
}

// ExistsActiveAtSlot проверяет занятость слота
func (s *Store) ExistsActiveAtSlot(_ context.Context, professionalID int64, date time.Time, at types.TimeString, excludeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activeAt(professionalID, date, at, excludeID), nil
}

// UpdateStatus условный переход статуса
func (s *Store) UpdateStatus(_ context.Context, id int64, from, to domain.TurnoStatus) error {
	return s.update(id, from, func(t *domain.Turno) error {
		t.Status = to
		return nil
	})
}

// Cancel условная отмена
func (s *Store) Cancel(_ context.Context, id int64, from domain.TurnoStatus, cancelledBy int64, reason *string) error {
	return s.update(id, from, func(t *domain.Turno) error {
		now := s.now()
		t.Status = domain.StatusCancelled
		t.CancelledBy = &cancelledBy
		t.CancellationReason = reason
		t.CancelledAt = &now
		return nil
	})
}

// UpdateDetails условное изменение даты, времени, адреса и примечаний
func (s *Store) UpdateDetails(_ context.Context, id int64, from domain.TurnoStatus, d turnoRepo.Details) error {
	return s.update(id, from, func(t *domain.Turno) error {
		if s.activeAt(t.ProfessionalID, d.Date, d.Time, t.ID) {
			return turnoRepo.ErrSlotTaken
		}
		t.Date = d.Date
		t.Time = d.Time
		t.Address = d.Address
		t.Observations = d.Observations
		return nil
	})
}

// CountActiveByPromotion количество активных бронирований с промо-акцией
func (s *Store) CountActiveByPromotion(_ context.Context, promotionID int64) (int, error) {
	return len(s.filter(func(t *domain.Turno) bool {
		return t.IsActive() && t.PromotionID != nil && *t.PromotionID == promotionID
	}, nil, false)), nil
}

// CountActiveByService количество активных бронирований услуги
func (s *Store) CountActiveByService(_ context.Context, serviceID int64) (int, error) {
	return len(s.filter(func(t *domain.Turno) bool {
		return t.IsActive() && t.ServiceID == serviceID
	}, nil, false)), nil
}

func (s *Store) update(id int64, from domain.TurnoStatus, apply func(t *domain.Turno) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.turnos[id]
	if !ok || t.Status != from {
		return turnoRepo.ErrStatusConflict
	}

	cp := *t
	if err := apply(&cp); err != nil {
		return err
	}
	cp.UpdatedAt = s.now()
	s.turnos[id] = &cp
	return nil
}

func (s *Store) activeAt(professionalID int64, date time.Time, at types.TimeString, excludeID int64) bool {
	for _, t := range s.turnos {
		if t.ID != excludeID && t.IsActive() && t.SameSlot(professionalID, date, at) {
			return true
		}
	}
	return false
}

func (s *Store) filter(match func(t *domain.Turno) bool, status *domain.TurnoStatus, desc bool) []*domain.Turno {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Turno, 0)
	for _, t := range s.turnos {
		if !match(t) || (status != nil && t.Status != *status) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		less := a.Date.Before(b.Date) || (domain.SameDate(a.Date, b.Date) && a.Time.IsBefore(b.Time))
		if desc {
			return !less && !(domain.SameDate(a.Date, b.Date) && a.Time.Equal(b.Time))
		}
		return less
	})
	return out
}

func matches(t *domain.Turno, f turnoRepo.ListFilter) bool {
	if f.ServiceID != nil && t.ServiceID != *f.ServiceID {
		return false
	}
	return inRange(t.Date, f.From, f.To)
}

func inRange(date time.Time, from, to *time.Time) bool {
	d := domain.DateOnly(date)
	if from != nil && d.Before(domain.DateOnly(*from)) {
		return false
	}
	if to != nil && d.After(domain.DateOnly(*to)) {
		return false
	}
	return true
}
