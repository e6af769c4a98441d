package promotions

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// IsApplicable проверяет, действует ли промо-акция на услугу в момент at.
// Явный список услуг важнее категории: если он задан, категория не учитывается.
func IsApplicable(p *domain.Promotion, service *domain.Service, at time.Time) bool {
	if p == nil || service == nil || !p.Active || !p.InWindow(at) {
		return false
	}

	if p.IsGlobal() {
		return true
	}

	if len(p.ServiceIDs) > 0 {
		return p.TargetsService(service.ID)
	}

	return p.CategoryID != nil && *p.CategoryID == service.CategoryID
}

// DiscountFor считает скидку для базовой цены, результат в [0, base]
func DiscountFor(p *domain.Promotion, base decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal

	switch p.Kind {
	case domain.DiscountPercentage:
		discount = base.Mul(p.Value).Div(hundred)
	case domain.DiscountFixedAmount:
		discount = p.Value
	}

	discount = discount.Round(domain.MoneyPlaces)

	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(base) {
		return base
	}
	return discount
}

// Validate проверяет ограничения записи промо-акции
// Процент в (0, 100], фиксированная сумма в (0, maxFixed], начало не позже конца
func Validate(p *domain.Promotion, maxFixed decimal.Decimal) error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: unknown discount kind %q", ErrInvalidPromotion, p.Kind)
	}

	if p.Value.LessThan(domain.MinDiscountValue) {
		return fmt.Errorf("%w: discount value %s below %s", ErrInvalidPromotion, p.Value, domain.MinDiscountValue)
	}

	switch p.Kind {
	case domain.DiscountPercentage:
		if p.Value.GreaterThan(domain.MaxPercentageDiscount) {
			return fmt.Errorf("%w: percentage %s exceeds %s", ErrInvalidPromotion, p.Value, domain.MaxPercentageDiscount)
		}
	case domain.DiscountFixedAmount:
		if p.Value.GreaterThan(maxFixed) {
			return fmt.Errorf("%w: fixed amount %s exceeds %s", ErrInvalidPromotion, p.Value, maxFixed)
		}
	}

	if p.StartsAt.After(p.EndsAt) {
		return fmt.Errorf("%w: starts_at after ends_at", ErrInvalidPromotion)
	}

	return nil
}
