package rate_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	ratingRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/rating"
	"github.com/m04kA/servihogar-turnos/internal/infra/storage/turno/turnotest"
	"github.com/m04kA/servihogar-turnos/pkg/logger"
	"github.com/m04kA/servihogar-turnos/pkg/ptr"
)

// memRatings хранит оценки и пересчитывает среднее полностью
type memRatings struct {
	turnos  *turnotest.Store
	ratings []*domain.Rating
}

func (m *memRatings) ExistsForTurno(_ context.Context, turnoID int64) (bool, error) {
	for _, r := range m.ratings {
		if r.TurnoID == turnoID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRatings) Create(ctx context.Context, r *domain.Rating) (*domain.Rating, error) {
	if ok, _ := m.ExistsForTurno(ctx, r.TurnoID); ok {
		return nil, ratingRepo.ErrAlreadyRated
	}
	r.ID = int64(len(m.ratings) + 1)
	m.ratings = append(m.ratings, r)
	return r, nil
}

func (m *memRatings) RecalculateProfessional(ctx context.Context, professionalID int64) (*domain.ProfessionalRating, error) {
	sum, count := 0, 0
	for _, r := range m.ratings {
		t, err := m.turnos.GetByID(ctx, r.TurnoID)
		if err != nil {
			return nil, err
		}
		if t.ProfessionalID == professionalID {
			sum += r.Score
			count++
		}
	}
	return &domain.ProfessionalRating{
		ProfessionalID: professionalID,
		Average:        decimal.NewFromInt(int64(sum)).DivRound(decimal.NewFromInt(int64(count)), domain.RatingAveragePlaces),
		Count:          count,
	}, nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type rated struct {
	turno int64
	score int
}

type recorder struct {
	rated []rated
}

func (r *recorder) EmitRated(_ context.Context, turno *domain.Turno, _ int64, score int) {
	r.rated = append(r.rated, rated{turno: turno.ID, score: score})
}

type fixture struct {
	uc      *UseCase
	store   *turnotest.Store
	ratings *memRatings
	events  *recorder
}

func newFixture() *fixture {
	store := turnotest.NewStore()
	f := &fixture{
		store:   store,
		ratings: &memRatings{turnos: store},
		events:  &recorder{},
	}
	f.uc = NewUseCase(store, f.ratings, inlineTx{}, f.events, logger.NewNop())
	return f
}

func (f *fixture) seed(status domain.TurnoStatus) int64 {
	return f.store.Put(&domain.Turno{
		ClientID:       3,
		ProfessionalID: 7,
		ServiceID:      10,
		Date:           time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:           "10:00",
		Status:         status,
	})
}

var client = domain.Actor{UserID: 3, Role: domain.RoleClient}

func TestExecute_ScoreOutOfRange(t *testing.T) {
	f := newFixture()
	id := f.seed(domain.StatusCompleted)

	for _, score := range []int{0, 6} {
		_, err := f.uc.Execute(context.Background(), &Request{Actor: client, TurnoID: id, Score: score})
		assert.ErrorIs(t, err, domain.ErrValidation, "score %d", score)
	}
	assert.Empty(t, f.ratings.ratings)
}

func TestExecute_SecondRatingIsAlreadyRated(t *testing.T) {
	f := newFixture()
	id := f.seed(domain.StatusCompleted)

	_, err := f.uc.Execute(context.Background(), &Request{Actor: client, TurnoID: id, Score: 4})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{Actor: client, TurnoID: id, Score: 5})
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
	assert.Len(t, f.ratings.ratings, 1)
	assert.Equal(t, []rated{{turno: id, score: 4}}, f.events.rated)
}

func TestExecute_AverageIsMeanOfAllScores(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := f.seed(domain.StatusCompleted)
	second := f.seed(domain.StatusCompleted)
	third := f.seed(domain.StatusCompleted)

	_, err := f.uc.Execute(ctx, &Request{Actor: client, TurnoID: first, Score: 5})
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, &Request{Actor: client, TurnoID: second, Score: 4})
	require.NoError(t, err)
	resp, err := f.uc.Execute(ctx, &Request{Actor: client, TurnoID: third, Score: 4, Comment: ptr.Ptr("puntual")})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.ProfessionalRating.Count)
	assert.Equal(t, "4.33", resp.ProfessionalRating.Average.StringFixed(2))
	assert.Equal(t, "puntual", *resp.Rating.Comment)
}

func TestExecute_NotCompleted(t *testing.T) {
	f := newFixture()

	for _, status := range []domain.TurnoStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress, domain.StatusCancelled} {
		id := f.seed(status)
		_, err := f.uc.Execute(context.Background(), &Request{Actor: client, TurnoID: id, Score: 5})
		assert.ErrorIs(t, err, domain.ErrNotCompleted, "status %s", status)
	}
}

func TestExecute_OnlyClientCanRate(t *testing.T) {
	f := newFixture()
	id := f.seed(domain.StatusCompleted)

	for _, actor := range []domain.Actor{
		{UserID: 4, Role: domain.RoleClient},
		{UserID: 7, Role: domain.RoleProfessional},
		{UserID: 1, Role: domain.RoleAdmin},
	} {
		_, err := f.uc.Execute(context.Background(), &Request{Actor: actor, TurnoID: id, Score: 5})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	}
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Actor: client, TurnoID: 42, Score: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type failingRatings struct{ memRatings }

func (failingRatings) RecalculateProfessional(context.Context, int64) (*domain.ProfessionalRating, error) {
	return nil, errors.New("connection reset")
}

func TestExecute_RecalculateFailureIsInternal(t *testing.T) {
	f := newFixture()
	id := f.seed(domain.StatusCompleted)
	f.uc.ratingRepo = &failingRatings{memRatings: memRatings{turnos: f.store}}

	_, err := f.uc.Execute(context.Background(), &Request{Actor: client, TurnoID: id, Score: 5})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.events.rated)
}
