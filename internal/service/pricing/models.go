package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// Source способ, которым была выбрана промо-акция
type Source string

const (
	SourceNone     Source = "none"
	SourceCode     Source = "code"
	SourceExplicit Source = "explicit"
	SourceAuto     Source = "auto"
)

// Result результат расчета цены
// Final = Base - Discount, 0 <= Discount <= Base
type Result struct {
	Base      decimal.Decimal
	Discount  decimal.Decimal
	Final     decimal.Decimal
	Promotion *domain.Promotion
	Source    Source
	// Warnings нефатальные проблемы (неизвестный промокод и т.п.), каждая оборачивает доменную ошибку
	Warnings []error
}

// PromotionID ID примененной промо-акции или nil
func (r *Result) PromotionID() *int64 {
	if r.Promotion == nil {
		return nil
	}
	id := r.Promotion.ID
	return &id
}

// WarningMessages тексты предупреждений
func (r *Result) WarningMessages() []string {
	messages := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		messages = append(messages, w.Error())
	}
	return messages
}
