package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	turnoRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/turno"
	"github.com/m04kA/servihogar-turnos/internal/integrations/catalogservice"
	"github.com/m04kA/servihogar-turnos/internal/integrations/events"
	"github.com/m04kA/servihogar-turnos/internal/service/availability"
	"github.com/m04kA/servihogar-turnos/pkg/pgerr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	turnoRepo        TurnoRepository
	availabilityRepo AvailabilityRepository
	catalogClient    CatalogClient
	pricing          PricingEngine
	txManager        TransactionManager
	emitter          EventEmitter
	metrics          Metrics
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	turnoRepo TurnoRepository,
	availabilityRepo AvailabilityRepository,
	catalogClient CatalogClient,
	pricing PricingEngine,
	txManager TransactionManager,
	emitter EventEmitter,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		turnoRepo:        turnoRepo,
		availabilityRepo: availabilityRepo,
		catalogClient:    catalogClient,
		pricing:          pricing,
		txManager:        txManager,
		emitter:          emitter,
		metrics:          metrics,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, professional=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if err := checkPermission(req.Actor, req.ClientID); err != nil {
		uc.logger.Warn("CreateBooking: user=%d (%s) cannot book for client=%d", req.Actor.UserID, req.Actor.Role, req.ClientID)
		return nil, err
	}

	// 3. Слот не может быть в прошлом
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)
	if !req.Time.On(date, uc.location).After(now) {
		uc.logger.Warn("CreateBooking: slot %s %s is in the past", date.Format(domain.DateFormat), req.Time)
		return nil, fmt.Errorf("%w: slot is in the past", domain.ErrValidation)
	}

	// 4. Параллельно получаем услугу и профессионала
	service, professional, err := uc.loadCatalog(ctx, req.ServiceID, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	// 5. Проверяем, что услугу можно заказать у профессионала
	if !service.IsBookable() {
		uc.logger.Warn("CreateBooking: service=%d or its category is inactive", service.ID)
		return nil, fmt.Errorf("%w: service %d is not active", domain.ErrServiceUnavailable, service.ID)
	}
	if !professional.Active {
		uc.logger.Warn("CreateBooking: professional=%d is not available", professional.ID)
		return nil, fmt.Errorf("%w: professional %d is not available", domain.ErrServiceUnavailable, professional.ID)
	}
	if !professional.Offers(service) {
		uc.logger.Warn("CreateBooking: professional=%d does not offer service=%d", professional.ID, service.ID)
		return nil, fmt.Errorf("%w: professional %d does not offer service %d", domain.ErrServiceUnavailable, professional.ID, service.ID)
	}

	// 6. Проверяем попадание в недельное расписание
	windows, err := uc.availabilityRepo.GetByProfessional(ctx, req.ProfessionalID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	if err := availability.ValidateSlot(windows, date, req.Time); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 7. Считаем цену на момент создания
	price, err := uc.pricing.Compute(ctx, service, now, req.PromotionID, req.PromoCode)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to compute price: %v", err)
		return nil, fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
	}

	turno := &domain.Turno{
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		PromotionID:    price.PromotionID(),
		Date:           date,
		Time:           req.Time,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Observations:   req.Observations,
		Status:         domain.StatusPending,
		BasePrice:      price.Base,
		Discount:       price.Discount,
		FinalPrice:     price.Final,
	}

	// 8. Проверяем слот и создаем бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		taken, err := uc.turnoRepo.ExistsActiveAtSlot(ctx, turno.ProfessionalID, turno.Date, turno.Time, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %s %s already booked", domain.ErrSlotUnavailable, turno.Date.Format(domain.DateFormat), turno.Time)
		}

		_, err = uc.turnoRepo.Create(ctx, turno)
		return err
	})
	if err != nil {
		if isSlotConflict(err) {
			uc.logger.Warn("CreateBooking: slot conflict for professional=%d at %s %s: %v",
				turno.ProfessionalID, turno.Date.Format(domain.DateFormat), turno.Time, err)
			if errors.Is(err, domain.ErrSlotUnavailable) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrSlotUnavailable, err)
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: failed to create turno: %v", ErrInternal, err)
	}

	// 9. Метрики и событие (best-effort)
	uc.metrics.ObserveTransition(string(domain.StatusPending))
	uc.metrics.ObservePromotion(string(price.Source))
	uc.emitter.Emit(ctx, events.TurnoCreated, turno, &req.Actor.UserID)

	uc.logger.Info("CreateBooking: created turno id=%d, final price=%s, promotion=%v",
		turno.ID, turno.FinalPrice.StringFixed(domain.MoneyPlaces), turno.PromotionID)

	return &Response{
		Turno:    turno,
		Warnings: price.WarningMessages(),
	}, nil
}

func (uc *UseCase) loadCatalog(ctx context.Context, serviceID, professionalID int64) (*domain.Service, *domain.Professional, error) {
	var (
		service      *domain.Service
		professional *domain.Professional
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		service, err = uc.catalogClient.GetService(gctx, serviceID)
		return err
	})
	g.Go(func() error {
		var err error
		professional, err = uc.catalogClient.GetProfessional(gctx, professionalID)
		return err
	})

	if err := g.Wait(); err != nil {
		switch {
		case errors.Is(err, catalogservice.ErrServiceNotFound):
			uc.logger.Warn("CreateBooking: service id=%d not found", serviceID)
			return nil, nil, fmt.Errorf("%w: service %d not found", domain.ErrServiceUnavailable, serviceID)
		case errors.Is(err, catalogservice.ErrProfessionalNotFound):
			uc.logger.Warn("CreateBooking: professional id=%d not found", professionalID)
			return nil, nil, fmt.Errorf("%w: professional %d not found", domain.ErrServiceUnavailable, professionalID)
		}
		uc.logger.Error("CreateBooking: catalog error: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get catalog data: %v", ErrInternal, err)
	}

	return service, professional, nil
}

// isSlotConflict true для занятого слота, нарушения уникального индекса и конфликта сериализации
func isSlotConflict(err error) bool {
	return errors.Is(err, domain.ErrSlotUnavailable) ||
		errors.Is(err, turnoRepo.ErrSlotTaken) ||
		errors.Is(err, turnoRepo.ErrSerialization) ||
		pgerr.IsUniqueViolation(err) ||
		pgerr.IsSerializationFailure(err)
}
