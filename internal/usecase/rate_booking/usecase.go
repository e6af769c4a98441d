package rate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	ratingRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/rating"
	turnoRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/turno"
)

// UseCase use case для оценки завершенного бронирования клиентом
type UseCase struct {
	turnoRepo  TurnoRepository
	ratingRepo RatingRepository
	txManager  TransactionManager
	emitter    EventEmitter
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	turnoRepo TurnoRepository,
	ratingRepo RatingRepository,
	txManager TransactionManager,
	emitter EventEmitter,
	logger Logger,
) *UseCase {
	return &UseCase{
		turnoRepo:  turnoRepo,
		ratingRepo: ratingRepo,
		txManager:  txManager,
		emitter:    emitter,
		logger:     logger,
	}
}

// Execute выполняет use case оценки
// Средняя оценка профессионала пересчитывается полностью в той же транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RateBooking: turno id=%d, score=%d by user=%d", req.TurnoID, req.Score, req.Actor.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	turno, err := uc.turnoRepo.GetByID(ctx, req.TurnoID)
	if err != nil {
		if errors.Is(err, turnoRepo.ErrTurnoNotFound) {
			uc.logger.Warn("RateBooking: turno id=%d not found", req.TurnoID)
			return nil, fmt.Errorf("%w: turno %d", domain.ErrNotFound, req.TurnoID)
		}
		uc.logger.Error("RateBooking: failed to get turno id=%d: %v", req.TurnoID, err)
		return nil, fmt.Errorf("%w: failed to get turno: %v", ErrInternal, err)
	}

	// 3. Оценивает только клиент бронирования
	if !req.Actor.IsClientOf(turno) {
		uc.logger.Warn("RateBooking: user=%d is not the client of turno id=%d", req.Actor.UserID, turno.ID)
		return nil, fmt.Errorf("%w: only the client can rate", domain.ErrPermissionDenied)
	}

	// 4. Оценить можно только завершенное бронирование
	if turno.Status != domain.StatusCompleted {
		uc.logger.Warn("RateBooking: turno id=%d is %s", turno.ID, turno.Status)
		return nil, fmt.Errorf("%w: turno %d is %s", domain.ErrNotCompleted, turno.ID, turno.Status)
	}

	resp := &Response{}

	// 5. Создаем оценку и пересчитываем рейтинг профессионала
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		exists, err := uc.ratingRepo.ExistsForTurno(ctx, turno.ID)
		if err != nil {
			return err
		}
		if exists {
			return ratingRepo.ErrAlreadyRated
		}

		resp.Rating, err = uc.ratingRepo.Create(ctx, &domain.Rating{
			TurnoID:  turno.ID,
			ClientID: turno.ClientID,
			Score:    req.Score,
			Comment:  req.Comment,
		})
		if err != nil {
			return err
		}

		resp.ProfessionalRating, err = uc.ratingRepo.RecalculateProfessional(ctx, turno.ProfessionalID)
		return err
	})
	if err != nil {
		if errors.Is(err, ratingRepo.ErrAlreadyRated) {
			uc.logger.Warn("RateBooking: turno id=%d already rated", turno.ID)
			return nil, fmt.Errorf("%w: turno %d", domain.ErrAlreadyRated, turno.ID)
		}
		uc.logger.Error("RateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: failed to rate turno: %v", ErrInternal, err)
	}

	// 6. Событие (best-effort)
	uc.emitter.EmitRated(ctx, turno, turno.ClientID, req.Score)

	uc.logger.Info("RateBooking: professional=%d average=%s over %d ratings",
		turno.ProfessionalID, resp.ProfessionalRating.Average.StringFixed(domain.MoneyPlaces), resp.ProfessionalRating.Count)

	return resp, nil
}
