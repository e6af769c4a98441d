package catalogservice

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// Service модель услуги из каталога
type Service struct {
	ID              int64           `json:"id"`
	CategoryID      int64           `json:"category_id"`
	ProfessionalID  *int64          `json:"professional_id,omitempty"`
	Name            string          `json:"name"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DurationMinutes int             `json:"duration_minutes"`
	Active          bool            `json:"active"`
	CategoryActive  bool            `json:"category_active"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		CategoryID:      s.CategoryID,
		ProfessionalID:  s.ProfessionalID,
		Name:            s.Name,
		BasePrice:       s.BasePrice.Round(domain.MoneyPlaces),
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
		CategoryActive:  s.CategoryActive,
	}
}

// Professional модель профессионала из каталога
type Professional struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Available  bool    `json:"disponible"`
	ServiceIDs []int64 `json:"service_ids"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (p *Professional) ToDomain() *domain.Professional {
	return &domain.Professional{
		ID:         p.ID,
		Name:       p.Name,
		Active:     p.Available,
		ServiceIDs: p.ServiceIDs,
	}
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
