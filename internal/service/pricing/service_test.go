package pricing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/service/promotions"
	"github.com/m04kA/servihogar-turnos/pkg/logger"
	"github.com/m04kA/servihogar-turnos/pkg/ptr"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeCatalog каталог в памяти с правилами применимости из promotions
type fakeCatalog struct {
	items []*domain.Promotion
	err   error
}

func (c *fakeCatalog) Usable(p *domain.Promotion, service *domain.Service, at time.Time) bool {
	return promotions.Validate(p, domain.DefaultMaxFixedDiscount) == nil && promotions.IsApplicable(p, service, at)
}

func (c *fakeCatalog) FindApplicable(_ context.Context, service *domain.Service, at time.Time) ([]*domain.Promotion, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []*domain.Promotion
	for _, p := range c.items {
		if c.Usable(p, service, at) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *fakeCatalog) GetByID(_ context.Context, id int64) (*domain.Promotion, error) {
	for _, p := range c.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, promotions.ErrPromotionNotFound
}

func (c *fakeCatalog) GetByCode(_ context.Context, code string) (*domain.Promotion, error) {
	for _, p := range c.items {
		if p.Code != nil && strings.EqualFold(*p.Code, code) {
			return p, nil
		}
	}
	return nil, promotions.ErrPromotionNotFound
}

func newPromo(id int64, kind domain.DiscountKind, value string) *domain.Promotion {
	return &domain.Promotion{
		ID:       id,
		Kind:     kind,
		Value:    decimal.RequireFromString(value),
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
		Active:   true,
	}
}

func plumbing() *domain.Service {
	return &domain.Service{ID: 10, CategoryID: 3, BasePrice: decimal.RequireFromString("1000.00"), DurationMinutes: 60, Active: true, CategoryActive: true}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestCompute_FixedBeatsPercentage(t *testing.T) {
	pct := newPromo(1, domain.DiscountPercentage, "15")
	pct.CategoryID = ptr.Ptr(int64(3))
	fixed := newPromo(2, domain.DiscountFixedAmount, "200")
	fixed.ServiceIDs = []int64{10}

	engine := NewService(&fakeCatalog{items: []*domain.Promotion{pct, fixed}}, logger.NewNop())

	res, err := engine.Compute(context.Background(), plumbing(), now, nil, nil)
	require.NoError(t, err)

	assertMoney(t, "1000.00", res.Base)
	assertMoney(t, "200.00", res.Discount)
	assertMoney(t, "800.00", res.Final)
	assert.Equal(t, "800.00", res.Final.StringFixed(domain.MoneyPlaces))
	assert.Equal(t, int64(2), *res.PromotionID())
	assert.Equal(t, SourceAuto, res.Source)
	assert.Empty(t, res.Warnings)
}

func TestCompute_InvalidPercentageNeverApplied(t *testing.T) {
	engine := NewService(&fakeCatalog{items: []*domain.Promotion{newPromo(1, domain.DiscountPercentage, "150")}}, logger.NewNop())

	res, err := engine.Compute(context.Background(), plumbing(), now, nil, nil)
	require.NoError(t, err)

	assert.Nil(t, res.Promotion)
	assert.Equal(t, SourceNone, res.Source)
	assertMoney(t, "0", res.Discount)
	assertMoney(t, "1000", res.Final)
}

func TestCompute_TieGoesToLowestID(t *testing.T) {
	a := newPromo(7, domain.DiscountFixedAmount, "100")
	b := newPromo(4, domain.DiscountPercentage, "10")
	c := newPromo(9, domain.DiscountFixedAmount, "100")

	engine := NewService(&fakeCatalog{items: []*domain.Promotion{a, b, c}}, logger.NewNop())

	res, err := engine.Compute(context.Background(), plumbing(), now, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Promotion.ID)
}

func TestCompute_PromoCodeCaseInsensitive(t *testing.T) {
	small := newPromo(1, domain.DiscountFixedAmount, "50")
	small.Code = ptr.Ptr("VERANO")
	big := newPromo(2, domain.DiscountFixedAmount, "300")

	engine := NewService(&fakeCatalog{items: []*domain.Promotion{small, big}}, logger.NewNop())

	res, err := engine.Compute(context.Background(), plumbing(), now, nil, ptr.Ptr("verano"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Promotion.ID)
	assert.Equal(t, SourceCode, res.Source)
	assertMoney(t, "950", res.Final)
}

func TestCompute_UnknownCodeFallsBackWithWarning(t *testing.T) {
	engine := NewService(&fakeCatalog{items: []*domain.Promotion{newPromo(2, domain.DiscountFixedAmount, "300")}}, logger.NewNop())

	res, err := engine.Compute(context.Background(), plumbing(), now, nil, ptr.Ptr("NOEXISTE"))
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], domain.ErrPromotionCodeInvalid)
	assert.Equal(t, SourceAuto, res.Source)
	assertMoney(t, "700", res.Final)
	assert.Len(t, res.WarningMessages(), 1)
}

func TestCompute_InvalidCodeIgnoresExplicit(t *testing.T) {
	small := newPromo(1, domain.DiscountFixedAmount, "50")
	big := newPromo(2, domain.DiscountFixedAmount, "300")

	engine := NewService(&fakeCatalog{items: []*domain.Promotion{small, big}}, logger.NewNop())

	res, err := engine.Compute(context.Background(), plumbing(), now, ptr.Ptr(int64(1)), ptr.Ptr("NOEXISTE"))
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.Promotion.ID)
	assert.Equal(t, SourceAuto, res.Source)
	assertMoney(t, "700", res.Final)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], domain.ErrPromotionCodeInvalid)
}

func TestCompute_ValidCodeWinsOverExplicit(t *testing.T) {
	coded := newPromo(1, domain.DiscountFixedAmount, "50")
	coded.Code = ptr.Ptr("VERANO")
	explicit := newPromo(2, domain.DiscountFixedAmount, "300")

	engine := NewService(&fakeCatalog{items: []*domain.Promotion{coded, explicit}}, logger.NewNop())

	res, err := engine.Compute(context.Background(), plumbing(), now, ptr.Ptr(int64(2)), ptr.Ptr("VERANO"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Promotion.ID)
	assert.Equal(t, SourceCode, res.Source)
	assert.Empty(t, res.Warnings)
}

func TestCompute_ExpiredCodeFallsBack(t *testing.T) {
	expired := newPromo(1, domain.DiscountFixedAmount, "500")
	expired.Code = ptr.Ptr("VIEJO")
	expired.EndsAt = now.Add(-time.Minute)

	engine := NewService(&fakeCatalog{items: []*domain.Promotion{expired}}, logger.NewNop())

	res, err := engine.Compute(context.Background(), plumbing(), now, nil, ptr.Ptr("VIEJO"))
	require.NoError(t, err)

	assert.Nil(t, res.Promotion)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], domain.ErrPromotionCodeInvalid)
}

func TestCompute_ExplicitPromotion(t *testing.T) {
	small := newPromo(1, domain.DiscountFixedAmount, "50")
	big := newPromo(2, domain.DiscountFixedAmount, "300")
	other := newPromo(3, domain.DiscountFixedAmount, "400")
	other.ServiceIDs = []int64{99}

	engine := NewService(&fakeCatalog{items: []*domain.Promotion{small, big, other}}, logger.NewNop())

	res, err := engine.Compute(context.Background(), plumbing(), now, ptr.Ptr(int64(1)), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Promotion.ID)
	assert.Equal(t, SourceExplicit, res.Source)

	res, err = engine.Compute(context.Background(), plumbing(), now, ptr.Ptr(int64(3)), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Promotion.ID)
	assert.Len(t, res.Warnings, 1)
}

func TestCompute_PriceIdentity(t *testing.T) {
	items := []*domain.Promotion{
		newPromo(1, domain.DiscountPercentage, "33.33"),
		newPromo(2, domain.DiscountFixedAmount, "5000"),
		newPromo(3, domain.DiscountPercentage, "100"),
	}
	engine := NewService(&fakeCatalog{items: items}, logger.NewNop())

	for _, price := range []string{"0", "0.01", "99.99", "1000.00", "1234.56"} {
		svc := plumbing()
		svc.BasePrice = decimal.RequireFromString(price)

		res, err := engine.Compute(context.Background(), svc, now, nil, nil)
		require.NoError(t, err)

		assert.True(t, res.Final.Equal(res.Base.Sub(res.Discount)), "price %s", price)
		assert.False(t, res.Final.IsNegative(), "price %s", price)
		assert.False(t, res.Discount.IsNegative(), "price %s", price)
	}
}

func TestCompute_CatalogError(t *testing.T) {
	engine := NewService(&fakeCatalog{err: errors.New("db down")}, logger.NewNop())

	_, err := engine.Compute(context.Background(), plumbing(), now, nil, nil)
	assert.ErrorIs(t, err, ErrInternal)
}
