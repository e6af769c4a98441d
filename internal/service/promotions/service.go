package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	promotionRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/promotion"
)

// Service каталог промо-акций
type Service struct {
	promotionRepo PromotionRepository
	turnoCounter  TurnoCounter
	maxFixed      decimal.Decimal
	logger        Logger
}

// NewService создает новый экземпляр каталога промо-акций
func NewService(
	promotionRepo PromotionRepository,
	turnoCounter TurnoCounter,
	maxFixed decimal.Decimal,
	logger Logger,
) *Service {
	return &Service{
		promotionRepo: promotionRepo,
		turnoCounter:  turnoCounter,
		maxFixed:      maxFixed,
		logger:        logger,
	}
}

// Usable проверяет, что запись корректна и промо-акция применима к услуге в момент at
func (s *Service) Usable(p *domain.Promotion, service *domain.Service, at time.Time) bool {
	if err := Validate(p, s.maxFixed); err != nil {
		s.logger.Warn("Usable: skipping promotion id=%d: %v", p.ID, err)
		return false
	}
	return IsApplicable(p, service, at)
}

// FindApplicable возвращает все применимые к услуге промо-акции в момент at
// Некорректные записи пропускаются с предупреждением
func (s *Service) FindApplicable(ctx context.Context, service *domain.Service, at time.Time) ([]*domain.Promotion, error) {
	candidates, err := s.promotionRepo.GetActiveAt(ctx, at)
	if err != nil {
		s.logger.Error("FindApplicable: repository error: %v", err)
		return nil, fmt.Errorf("%w: FindApplicable - repository error: %v", ErrInternal, err)
	}

	applicable := make([]*domain.Promotion, 0, len(candidates))
	for _, p := range candidates {
		if s.Usable(p, service, at) {
			applicable = append(applicable, p)
		}
	}

	s.logger.Info("FindApplicable: service=%d, candidates=%d, applicable=%d", service.ID, len(candidates), len(applicable))
	return applicable, nil
}

// GetByID получает промо-акцию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	p, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("GetByID: repository error for promotion id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return p, nil
}

// GetByCode ищет промо-акцию по коду без учета регистра
func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrPromotionNotFound
	}

	p, err := s.promotionRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%q: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}
	return p, nil
}

// CanDeactivate сообщает, можно ли выключить промо-акцию
// Нельзя, пока на неё ссылаются незавершенные бронирования. Возвращает их количество
func (s *Service) CanDeactivate(ctx context.Context, promotionID int64) (bool, int, error) {
	count, err := s.turnoCounter.CountActiveByPromotion(ctx, promotionID)
	if err != nil {
		s.logger.Error("CanDeactivate: failed to count turnos for promotion id=%d: %v", promotionID, err)
		return false, 0, fmt.Errorf("%w: CanDeactivate - count turnos: %v", ErrInternal, err)
	}
	return count == 0, count, nil
}
