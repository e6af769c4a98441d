package availability

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// Service сервис для работы с недельным расписанием профессионалов
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetWeek возвращает расписание профессионала
// Публичный метод - доступен всем
func (s *Service) GetWeek(ctx context.Context, professionalID int64) ([]*domain.AvailabilityWindow, error) {
	windows, err := s.availabilityRepo.GetByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}
	return windows, nil
}

// ReplaceWeek заменяет расписание профессионала целиком
// Доступно самому профессионалу и администратору
func (s *Service) ReplaceWeek(ctx context.Context, actor domain.Actor, professionalID int64, windows []*domain.AvailabilityWindow) ([]*domain.AvailabilityWindow, error) {
	s.logger.Info("ReplaceWeek: professional=%d, windows=%d by user=%d (%s)", professionalID, len(windows), actor.UserID, actor.Role)

	// 1. Проверяем права доступа
	if !actor.IsAdmin() && !(actor.Role == domain.RoleProfessional && actor.UserID == professionalID) {
		s.logger.Warn("ReplaceWeek: user=%d is not allowed to edit professional=%d", actor.UserID, professionalID)
		return nil, fmt.Errorf("%w: only the professional or an admin can edit availability", domain.ErrPermissionDenied)
	}

	// 2. Валидируем окна
	if err := validateWeek(windows); err != nil {
		s.logger.Warn("ReplaceWeek: validation failed: %v", err)
		return nil, err
	}

	// 3. Заменяем расписание и перечитываем его в одной транзакции
	var saved []*domain.AvailabilityWindow
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.availabilityRepo.ReplaceWeek(ctx, professionalID, windows); err != nil {
			return err
		}
		var err error
		saved, err = s.availabilityRepo.GetByProfessional(ctx, professionalID)
		return err
	})
	if err != nil {
		s.logger.Error("ReplaceWeek: failed to save availability for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: ReplaceWeek - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeek: saved %d windows for professional=%d", len(saved), professionalID)
	return saved, nil
}

func validateWeek(windows []*domain.AvailabilityWindow) error {
	seen := make(map[int]struct{}, len(windows))
	for _, w := range windows {
		if !w.IsValid() {
			return fmt.Errorf("%w: invalid window day=%d %s-%s", domain.ErrValidation, w.DayOfWeek, w.StartTime, w.EndTime)
		}
		if _, dup := seen[w.DayOfWeek]; dup {
			return fmt.Errorf("%w: duplicate window for day %d", domain.ErrValidation, w.DayOfWeek)
		}
		seen[w.DayOfWeek] = struct{}{}
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].DayOfWeek < windows[j].DayOfWeek })
	return nil
}
