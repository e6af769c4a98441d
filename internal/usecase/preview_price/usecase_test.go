package preview_price

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/integrations/catalogservice"
	"github.com/m04kA/servihogar-turnos/internal/service/pricing"
	"github.com/m04kA/servihogar-turnos/internal/service/promotions"
	"github.com/m04kA/servihogar-turnos/pkg/logger"
	"github.com/m04kA/servihogar-turnos/pkg/ptr"
)

type fakeCatalog struct {
	service *domain.Service
}

func (c fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if c.service == nil || c.service.ID != id {
		return nil, catalogservice.ErrServiceNotFound
	}
	return c.service, nil
}

type staticPromotions []*domain.Promotion

func (s staticPromotions) FindApplicable(context.Context, *domain.Service, time.Time) ([]*domain.Promotion, error) {
	return s, nil
}

func (s staticPromotions) GetByID(_ context.Context, id int64) (*domain.Promotion, error) {
	for _, p := range s {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, promotions.ErrPromotionNotFound
}

func (s staticPromotions) GetByCode(context.Context, string) (*domain.Promotion, error) {
	return nil, promotions.ErrPromotionNotFound
}

func (s staticPromotions) Usable(*domain.Promotion, *domain.Service, time.Time) bool {
	return true
}

func newUseCase(service *domain.Service, promos staticPromotions) *UseCase {
	engine := pricing.NewService(promos, logger.NewNop())
	return NewUseCase(fakeCatalog{service: service}, engine, logger.NewNop())
}

func TestExecute_AppliesBestPromotion(t *testing.T) {
	service := &domain.Service{ID: 10, BasePrice: decimal.RequireFromString("1000.00"), Active: true, CategoryActive: true}
	uc := newUseCase(service, staticPromotions{
		{ID: 1, Title: "Diez", Kind: domain.DiscountPercentage, Value: decimal.NewFromInt(10)},
		{ID: 2, Title: "Doscientos", Kind: domain.DiscountFixedAmount, Value: decimal.NewFromInt(200)},
	})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10})
	require.NoError(t, err)

	assert.Equal(t, "1000.00", resp.BasePrice)
	assert.Equal(t, "200.00", resp.Discount)
	assert.Equal(t, "800.00", resp.FinalPrice)
	assert.Equal(t, int64(2), *resp.PromotionID)
	assert.Equal(t, "auto", resp.Source)
}

func TestExecute_UnknownCodeIsWarning(t *testing.T) {
	service := &domain.Service{ID: 10, BasePrice: decimal.RequireFromString("500.00"), Active: true, CategoryActive: true}
	uc := newUseCase(service, nil)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, PromoCode: ptr.Ptr(" NOEXISTE ")})
	require.NoError(t, err)

	assert.Equal(t, "500.00", resp.FinalPrice)
	assert.Len(t, resp.Warnings, 1)
}

func TestExecute_Errors(t *testing.T) {
	inactive := &domain.Service{ID: 10, BasePrice: decimal.NewFromInt(100), Active: true, CategoryActive: false}

	_, err := newUseCase(inactive, nil).Execute(context.Background(), &Request{ServiceID: 10})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)

	_, err = newUseCase(nil, nil).Execute(context.Background(), &Request{ServiceID: 10})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = newUseCase(nil, nil).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
