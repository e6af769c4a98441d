package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/service/promotions"
)

// Service движок расчета цены бронирования
type Service struct {
	catalog PromotionCatalog
	logger  Logger
}

// NewService создает новый экземпляр движка цен
func NewService(catalog PromotionCatalog, logger Logger) *Service {
	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// Compute считает цену услуги в момент at
// Порядок: промокод, иначе явно выбранная промо-акция, затем лучшая автоматически.
// Неприменимые промокод и промо-акция дают предупреждение, а не ошибку.
// При переданном промокоде явная промо-акция не рассматривается
func (s *Service) Compute(ctx context.Context, service *domain.Service, at time.Time, explicitPromotionID *int64, promoCode *string) (*Result, error) {
	base := service.BasePrice.Round(domain.MoneyPlaces)
	result := &Result{Base: base, Source: SourceNone}

	// 1. Промокод
	if hasCode(promoCode) {
		p, err := s.resolveCode(ctx, service, at, *promoCode)
		if err != nil && !errors.Is(err, domain.ErrPromotionCodeInvalid) {
			return nil, err
		}
		if p != nil {
			return s.apply(result, p, SourceCode), nil
		}
		result.Warnings = append(result.Warnings, err)
		s.logger.Warn("Compute: promo code %q rejected for service=%d, falling back to automatic selection", *promoCode, service.ID)
	}

	// 2. Явно выбранная промо-акция (только без промокода)
	if explicitPromotionID != nil && !hasCode(promoCode) {
		p, err := s.resolveExplicit(ctx, service, at, *explicitPromotionID)
		if err != nil && !errors.Is(err, domain.ErrPromotionCodeInvalid) {
			return nil, err
		}
		if p != nil {
			return s.apply(result, p, SourceExplicit), nil
		}
		result.Warnings = append(result.Warnings, err)
		s.logger.Warn("Compute: promotion id=%d not applicable to service=%d, falling back to automatic selection", *explicitPromotionID, service.ID)
	}

	// 3. Автоматический выбор
	candidates, err := s.catalog.FindApplicable(ctx, service, at)
	if err != nil {
		return nil, fmt.Errorf("%w: Compute - find applicable: %v", ErrInternal, err)
	}

	if best := Best(candidates, base); best != nil {
		return s.apply(result, best, SourceAuto), nil
	}

	result.Discount = decimal.Zero
	result.Final = base
	return result, nil
}

func hasCode(code *string) bool {
	return code != nil && *code != ""
}

func (s *Service) resolveCode(ctx context.Context, service *domain.Service, at time.Time, code string) (*domain.Promotion, error) {
	p, err := s.catalog.GetByCode(ctx, code)
	if errors.Is(err, promotions.ErrPromotionNotFound) {
		return nil, fmt.Errorf("%w: code %q not found", domain.ErrPromotionCodeInvalid, code)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Compute - get promotion by code: %v", ErrInternal, err)
	}
	if !s.catalog.Usable(p, service, at) {
		return nil, fmt.Errorf("%w: code %q not applicable", domain.ErrPromotionCodeInvalid, code)
	}
	return p, nil
}

func (s *Service) resolveExplicit(ctx context.Context, service *domain.Service, at time.Time, id int64) (*domain.Promotion, error) {
	p, err := s.catalog.GetByID(ctx, id)
	if errors.Is(err, promotions.ErrPromotionNotFound) {
		return nil, fmt.Errorf("%w: promotion %d not found", domain.ErrPromotionCodeInvalid, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Compute - get promotion by id: %v", ErrInternal, err)
	}
	if !s.catalog.Usable(p, service, at) {
		return nil, fmt.Errorf("%w: promotion %d not applicable", domain.ErrPromotionCodeInvalid, id)
	}
	return p, nil
}

func (s *Service) apply(result *Result, p *domain.Promotion, source Source) *Result {
	result.Promotion = p
	result.Source = source
	result.Discount = promotions.DiscountFor(p, result.Base)
	result.Final = result.Base.Sub(result.Discount)
	return result
}

// Best выбирает промо-акцию с наибольшей скидкой, при равенстве с наименьшим ID
func Best(candidates []*domain.Promotion, base decimal.Decimal) *domain.Promotion {
	var best *domain.Promotion
	var bestDiscount decimal.Decimal

	for _, p := range candidates {
		d := promotions.DiscountFor(p, base)
		switch {
		case best == nil,
			d.GreaterThan(bestDiscount),
			d.Equal(bestDiscount) && p.ID < best.ID:
			best, bestDiscount = p, d
		}
	}

	return best
}
