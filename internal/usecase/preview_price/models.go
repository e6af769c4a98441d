package preview_price

import (
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/ptr"
)

// Request запрос на предварительный расчет цены услуги
type Request struct {
	ServiceID   int64
	PromoCode   *string
	PromotionID *int64
	At          *time.Time // Момент расчета, по умолчанию текущий
}

// Response цена услуги с учетом лучшей применимой промо-акции
type Response struct {
	ServiceID   int64    `json:"serviceId"`
	BasePrice   string   `json:"basePrice"`
	Discount    string   `json:"discount"`
	FinalPrice  string   `json:"finalPrice"`
	PromotionID *int64   `json:"promotionId,omitempty"`
	Promotion   *string  `json:"promotion,omitempty"`
	Source      string   `json:"source"`
	Warnings    []string `json:"warnings,omitempty"`
}

func promotionName(p *domain.Promotion) *string {
	if p == nil {
		return nil
	}
	return ptr.Ptr(p.Title)
}
