package modify_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	turnoRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/turno"
	"github.com/m04kA/servihogar-turnos/internal/integrations/events"
	"github.com/m04kA/servihogar-turnos/internal/service/availability"
	"github.com/m04kA/servihogar-turnos/pkg/pgerr"
)

// UseCase use case для изменения даты, времени, адреса или примечаний бронирования
// Цена бронирования не пересчитывается
type UseCase struct {
	turnoRepo        TurnoRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	emitter          EventEmitter
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	turnoRepo TurnoRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	emitter EventEmitter,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		turnoRepo:        turnoRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		emitter:          emitter,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case изменения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyBooking: turno id=%d by user=%d (%s)", req.TurnoID, req.Actor.UserID, req.Actor.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ModifyBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	turno, err := uc.turnoRepo.GetByID(ctx, req.TurnoID)
	if err != nil {
		if errors.Is(err, turnoRepo.ErrTurnoNotFound) {
			uc.logger.Warn("ModifyBooking: turno id=%d not found", req.TurnoID)
			return nil, fmt.Errorf("%w: turno %d", domain.ErrNotFound, req.TurnoID)
		}
		uc.logger.Error("ModifyBooking: failed to get turno id=%d: %v", req.TurnoID, err)
		return nil, fmt.Errorf("%w: failed to get turno: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа
	if !req.Actor.CanView(turno) {
		uc.logger.Warn("ModifyBooking: user=%d cannot modify turno id=%d", req.Actor.UserID, turno.ID)
		return nil, fmt.Errorf("%w: only the client, the professional or an admin can modify", domain.ErrPermissionDenied)
	}

	// 4. Менять можно только pending и confirmed
	if !turno.CanBeModified() {
		uc.logger.Warn("ModifyBooking: turno id=%d is %s", turno.ID, turno.Status)
		return nil, fmt.Errorf("%w: cannot modify a %s turno", domain.ErrInvalidTransition, turno.Status)
	}

	details := merge(turno, req)
	moved := !domain.SameDate(details.Date, turno.Date) || !details.Time.Equal(turno.Time)

	// 5. При переносе проверяем новый слот по расписанию
	if moved {
		if !details.Time.On(details.Date, uc.location).After(uc.timeProvider.Now()) {
			uc.logger.Warn("ModifyBooking: new slot %s %s is in the past", details.Date.Format(domain.DateFormat), details.Time)
			return nil, fmt.Errorf("%w: slot is in the past", domain.ErrValidation)
		}

		windows, err := uc.availabilityRepo.GetByProfessional(ctx, turno.ProfessionalID)
		if err != nil {
			uc.logger.Error("ModifyBooking: failed to get availability: %v", err)
			return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}
		if err := availability.ValidateSlot(windows, details.Date, details.Time); err != nil {
			uc.logger.Warn("ModifyBooking: %v", err)
			return nil, err
		}
	}

	// 6. Проверяем занятость (без учета собственного слота) и обновляем
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if moved {
			taken, err := uc.turnoRepo.ExistsActiveAtSlot(ctx, turno.ProfessionalID, details.Date, details.Time, turno.ID)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: %s %s already booked", domain.ErrSlotUnavailable, details.Date.Format(domain.DateFormat), details.Time)
			}
		}
		return uc.turnoRepo.UpdateDetails(ctx, turno.ID, turno.Status, details)
	})
	if err != nil {
		return nil, uc.mapError(ctx, turno, err)
	}

	turno.Date = details.Date
	turno.Time = details.Time
	turno.Address = details.Address
	turno.Observations = details.Observations

	// 7. Событие (best-effort)
	uc.emitter.Emit(ctx, events.TurnoModified, turno, &req.Actor.UserID)

	uc.logger.Info("ModifyBooking: turno id=%d now at %s %s", turno.ID, turno.Date.Format(domain.DateFormat), turno.Time)

	if fresh, err := uc.turnoRepo.GetByID(ctx, turno.ID); err == nil {
		turno = fresh
	}
	return &Response{Turno: turno}, nil
}

func (uc *UseCase) mapError(ctx context.Context, turno *domain.Turno, err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotUnavailable):
		uc.logger.Warn("ModifyBooking: %v", err)
		return err
	case errors.Is(err, turnoRepo.ErrSlotTaken),
		errors.Is(err, turnoRepo.ErrSerialization),
		pgerr.IsUniqueViolation(err),
		pgerr.IsSerializationFailure(err):
		uc.logger.Warn("ModifyBooking: slot conflict for turno id=%d: %v", turno.ID, err)
		return fmt.Errorf("%w: %v", domain.ErrSlotUnavailable, err)
	case errors.Is(err, turnoRepo.ErrStatusConflict):
		current, getErr := uc.turnoRepo.GetByID(ctx, turno.ID)
		if errors.Is(getErr, turnoRepo.ErrTurnoNotFound) {
			return fmt.Errorf("%w: turno %d", domain.ErrNotFound, turno.ID)
		}
		if getErr != nil {
			uc.logger.Error("ModifyBooking: failed to re-read turno id=%d: %v", turno.ID, getErr)
			return fmt.Errorf("%w: re-read turno: %v", ErrInternal, getErr)
		}
		uc.logger.Warn("ModifyBooking: turno id=%d changed concurrently to %s", turno.ID, current.Status)
		return fmt.Errorf("%w: turno %d is now %s", domain.ErrInvalidTransition, turno.ID, current.Status)
	}

	uc.logger.Error("ModifyBooking: transaction failed: %v", err)
	return fmt.Errorf("%w: failed to modify turno: %v", ErrInternal, err)
}

// merge накладывает изменения запроса на текущие значения бронирования
func merge(turno *domain.Turno, req *Request) turnoRepo.Details {
	d := turnoRepo.Details{
		Date:         turno.Date,
		Time:         turno.Time,
		Address:      turno.Address,
		Observations: turno.Observations,
	}
	if req.Date != nil {
		d.Date = domain.DateOnly(*req.Date)
	}
	if req.Time != nil {
		d.Time = *req.Time
	}
	if req.Address != nil {
		d.Address = *req.Address
	}
	if req.Observations != nil {
		d.Observations = req.Observations
	}
	return d
}
