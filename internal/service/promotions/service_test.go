package promotions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	promotionRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/promotion"
	"github.com/m04kA/servihogar-turnos/pkg/logger"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetActiveAt(ctx context.Context, at time.Time) ([]*domain.Promotion, error) {
	args := m.Called(ctx, at)
	list, _ := args.Get(0).([]*domain.Promotion)
	return list, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Promotion)
	return p, args.Error(1)
}

func (m *mockRepo) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(*domain.Promotion)
	return p, args.Error(1)
}

type counterFunc func(ctx context.Context, id int64) (int, error)

func (f counterFunc) CountActiveByPromotion(ctx context.Context, id int64) (int, error) {
	return f(ctx, id)
}

func TestFindApplicable_SkipsInvalidRecords(t *testing.T) {
	repo := &mockRepo{}
	invalid := promo(domain.DiscountPercentage, "150")
	invalid.ID = 2
	valid := promo(domain.DiscountPercentage, "15")
	valid.ID = 3

	repo.On("GetActiveAt", mock.Anything, now).Return([]*domain.Promotion{invalid, valid}, nil)

	s := NewService(repo, nil, domain.DefaultMaxFixedDiscount, logger.NewNop())
	got, err := s.FindApplicable(context.Background(), service, now)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	repo.AssertExpectations(t)
}

func TestFindApplicable_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetActiveAt", mock.Anything, now).Return(nil, errors.New("db down"))

	s := NewService(repo, nil, domain.DefaultMaxFixedDiscount, logger.NewNop())
	_, err := s.FindApplicable(context.Background(), service, now)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetByCode(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByCode", mock.Anything, "VERANO").Return(promo(domain.DiscountFixedAmount, "100"), nil)
	repo.On("GetByCode", mock.Anything, "nope").Return(nil, promotionRepo.ErrPromotionNotFound)

	s := NewService(repo, nil, domain.DefaultMaxFixedDiscount, logger.NewNop())

	p, err := s.GetByCode(context.Background(), "  VERANO ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	_, err = s.GetByCode(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPromotionNotFound)

	_, err = s.GetByCode(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func TestCanDeactivate(t *testing.T) {
	counts := map[int64]int{1: 0, 2: 3}
	counter := counterFunc(func(_ context.Context, id int64) (int, error) {
		if id == 99 {
			return 0, errors.New("db down")
		}
		return counts[id], nil
	})

	s := NewService(&mockRepo{}, counter, domain.DefaultMaxFixedDiscount, logger.NewNop())

	ok, n, err := s.CanDeactivate(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, n)

	ok, n, err = s.CanDeactivate(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, n)

	_, _, err = s.CanDeactivate(context.Background(), 99)
	assert.ErrorIs(t, err, ErrInternal)
}
