package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/internal/integrations/catalogservice"
	"github.com/m04kA/servihogar-turnos/internal/service/availability"
)

// UseCase use case для получения свободных слотов профессионала
type UseCase struct {
	turnoRepo        TurnoRepository
	availabilityRepo AvailabilityRepository
	catalogClient    CatalogClient
	settings         Settings
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	turnoRepo TurnoRepository,
	availabilityRepo AvailabilityRepository,
	catalogClient CatalogClient,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.DefaultHorizonDays <= 0 {
		settings.DefaultHorizonDays = domain.DefaultHorizonDays
	}
	if settings.MaxHorizonDays <= 0 {
		settings.MaxHorizonDays = domain.MaxHorizonDays
	}

	return &UseCase{
		turnoRepo:        turnoRepo,
		availabilityRepo: availabilityRepo,
		catalogClient:    catalogClient,
		settings:         settings,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, service=%d, from=%s, days=%d",
		req.ProfessionalID, req.ServiceID, req.FromDate.Format(domain.DateFormat), req.HorizonDays)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.settings); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и начальную дату
	now := uc.timeProvider.Now()
	from := req.FromDate
	if from.IsZero() {
		from = now.In(uc.settings.Location)
	}
	from = domain.DateOnly(from)
	to := from.AddDate(0, 0, req.HorizonDays-1)

	// 3. Параллельно получаем услугу и профессионала
	var (
		service      *domain.Service
		professional *domain.Professional
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		service, err = uc.catalogClient.GetService(gctx, req.ServiceID)
		return err
	})
	g.Go(func() error {
		var err error
		professional, err = uc.catalogClient.GetProfessional(gctx, req.ProfessionalID)
		return err
	})
	if err := g.Wait(); err != nil {
		switch {
		case errors.Is(err, catalogservice.ErrServiceNotFound):
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, fmt.Errorf("%w: service %d", domain.ErrNotFound, req.ServiceID)
		case errors.Is(err, catalogservice.ErrProfessionalNotFound):
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, fmt.Errorf("%w: professional %d", domain.ErrNotFound, req.ProfessionalID)
		}
		uc.logger.Error("GetAvailableSlots: catalog error: %v", err)
		return nil, fmt.Errorf("%w: failed to get catalog data: %v", ErrInternal, err)
	}

	// 4. Проверяем, что профессионал доступен и оказывает услугу
	if !service.IsBookable() || !professional.Active || !professional.Offers(service) {
		uc.logger.Warn("GetAvailableSlots: service=%d is not bookable with professional=%d", req.ServiceID, req.ProfessionalID)
		return nil, fmt.Errorf("%w: service %d with professional %d", domain.ErrServiceUnavailable, req.ServiceID, req.ProfessionalID)
	}

	// 5. Получаем недельное расписание
	windows, err := uc.availabilityRepo.GetByProfessional(ctx, req.ProfessionalID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 6. Получаем активные бронирования в горизонте
	turnos, err := uc.turnoRepo.GetActiveByProfessional(ctx, req.ProfessionalID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get turnos: %v", err)
		return nil, fmt.Errorf("%w: failed to get turnos: %v", ErrInternal, err)
	}

	busy := make([]domain.BusySlot, 0, len(turnos))
	for _, t := range turnos {
		busy = append(busy, domain.BusySlot{Date: t.Date, Time: t.Time})
	}

	uc.logger.Info("GetAvailableSlots: professional=%d has %d windows and %d busy slots in [%s, %s]",
		req.ProfessionalID, len(windows), len(busy), from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 7. Слоты вычисляются лениво
	return &Response{
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		FromDate:        from,
		HorizonDays:     req.HorizonDays,
		DurationMinutes: service.DurationMinutes,
		Slots: availability.FreeSlots(
			windows,
			busy,
			service.DurationMinutes,
			from,
			req.HorizonDays,
			now,
			uc.settings.Location,
		),
	}, nil
}
