package preview_price

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/integrations/catalogservice"
)

// UseCase use case предварительного расчета цены без создания бронирования
type UseCase struct {
	catalogClient CatalogClient
	pricing       PricingEngine
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogClient CatalogClient, pricing PricingEngine, logger Logger) *UseCase {
	return &UseCase{
		catalogClient: catalogClient,
		pricing:       pricing,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute считает цену услуги на текущий момент
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PreviewPrice: service=%d, promotion=%v, code=%v", req.ServiceID, req.PromotionID, req.PromoCode)

	// 1. Валидация входных данных
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", domain.ErrValidation)
	}
	if req.PromoCode != nil {
		code := strings.TrimSpace(*req.PromoCode)
		if len(code) > domain.MaxPromoCodeLength {
			return nil, fmt.Errorf("%w: promo code exceeds %d characters", domain.ErrValidation, domain.MaxPromoCodeLength)
		}
		req.PromoCode = &code
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("PreviewPrice: service id=%d not found", req.ServiceID)
			return nil, fmt.Errorf("%w: service %d", domain.ErrNotFound, req.ServiceID)
		}
		uc.logger.Error("PreviewPrice: catalog error: %v", err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("PreviewPrice: service=%d is not active", service.ID)
		return nil, fmt.Errorf("%w: service %d is not active", domain.ErrServiceUnavailable, service.ID)
	}

	// 3. Считаем цену
	at := uc.timeProvider.Now()
	if req.At != nil {
		at = *req.At
	}

	result, err := uc.pricing.Compute(ctx, service, at, req.PromotionID, req.PromoCode)
	if err != nil {
		uc.logger.Error("PreviewPrice: failed to compute price: %v", err)
		return nil, fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
	}

	return &Response{
		ServiceID:   service.ID,
		BasePrice:   result.Base.StringFixed(domain.MoneyPlaces),
		Discount:    result.Discount.StringFixed(domain.MoneyPlaces),
		FinalPrice:  result.Final.StringFixed(domain.MoneyPlaces),
		PromotionID: result.PromotionID(),
		Promotion:   promotionName(result.Promotion),
		Source:      string(result.Source),
		Warnings:    result.WarningMessages(),
	}, nil
}
