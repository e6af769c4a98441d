package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	turnoRepo "github.com/m04kA/servihogar-turnos/internal/infra/storage/turno"
	"github.com/m04kA/servihogar-turnos/internal/integrations/events"
	"github.com/m04kA/servihogar-turnos/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	turnoRepo TurnoRepository
	emitter   EventEmitter
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	turnoRepo TurnoRepository,
	emitter EventEmitter,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		turnoRepo: turnoRepo,
		emitter:   emitter,
		metrics:   metrics,
		logger:    logger,
	}
}

// transition описание перехода статуса
type transition struct {
	op      string
	to      domain.TurnoStatus
	event   events.Type
	allowed func(actor domain.Actor, t *domain.Turno) bool
}

func professionalOrAdmin(actor domain.Actor, t *domain.Turno) bool {
	return actor.IsAdmin() || actor.IsProfessionalOf(t)
}

func participantOrAdmin(actor domain.Actor, t *domain.Turno) bool {
	return actor.CanView(t)
}

var (
	confirmTransition  = transition{op: "Confirm", to: domain.StatusConfirmed, event: events.TurnoConfirmed, allowed: professionalOrAdmin}
	startTransition    = transition{op: "Start", to: domain.StatusInProgress, event: events.TurnoStarted, allowed: professionalOrAdmin}
	completeTransition = transition{op: "Complete", to: domain.StatusCompleted, event: events.TurnoCompleted, allowed: professionalOrAdmin}
)

// GetByID получает бронирование по ID
// Доступно клиенту, профессионалу бронирования и администратору
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.TurnoResponse, error) {
	s.logger.Info("GetByID: fetching turno id=%d for user=%d (%s)", id, actor.UserID, actor.Role)

	turno, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if !actor.CanView(turno) {
		s.logger.Warn("GetByID: access denied for user=%d to turno id=%d", actor.UserID, id)
		return nil, fmt.Errorf("%w: turno %d", domain.ErrPermissionDenied, id)
	}

	return models.FromDomainTurno(turno), nil
}

// Confirm переводит бронирование pending -> confirmed (профессионал или администратор)
func (s *Service) Confirm(ctx context.Context, id int64, actor domain.Actor) (*models.TurnoResponse, error) {
	return s.apply(ctx, id, actor, confirmTransition)
}

// Start переводит бронирование confirmed -> in_progress (профессионал или администратор)
func (s *Service) Start(ctx context.Context, id int64, actor domain.Actor) (*models.TurnoResponse, error) {
	return s.apply(ctx, id, actor, startTransition)
}

// Complete переводит бронирование in_progress -> completed (профессионал или администратор)
func (s *Service) Complete(ctx context.Context, id int64, actor domain.Actor) (*models.TurnoResponse, error) {
	return s.apply(ctx, id, actor, completeTransition)
}

// Reject отклоняет ожидающее бронирование: pending -> cancelled (профессионал или администратор)
func (s *Service) Reject(ctx context.Context, id int64, actor domain.Actor, reason *string) (*models.TurnoResponse, error) {
	s.logger.Info("Reject: turno id=%d by user=%d (%s)", id, actor.UserID, actor.Role)

	if err := validateReason(reason); err != nil {
		return nil, err
	}

	turno, err := s.load(ctx, "Reject", id)
	if err != nil {
		return nil, err
	}

	if !professionalOrAdmin(actor, turno) {
		s.logger.Warn("Reject: user=%d is not allowed to reject turno id=%d", actor.UserID, id)
		return nil, fmt.Errorf("%w: only the professional or an admin can reject", domain.ErrPermissionDenied)
	}

	if turno.Status != domain.StatusPending {
		s.logger.Warn("Reject: turno id=%d is %s", id, turno.Status)
		return nil, fmt.Errorf("%w: cannot reject a %s turno", domain.ErrInvalidTransition, turno.Status)
	}

	return s.cancel(ctx, "Reject", turno, actor, reason, events.TurnoRejected)
}

// Cancel отменяет бронирование из pending, confirmed или in_progress
// Доступно клиенту, профессионалу бронирования и администратору
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelTurnoRequest) (*models.TurnoResponse, error) {
	s.logger.Info("Cancel: turno id=%d by user=%d (%s)", id, req.Actor.UserID, req.Actor.Role)

	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	turno, err := s.load(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !participantOrAdmin(req.Actor, turno) {
		s.logger.Warn("Cancel: user=%d is not allowed to cancel turno id=%d", req.Actor.UserID, id)
		return nil, fmt.Errorf("%w: only the client, the professional or an admin can cancel", domain.ErrPermissionDenied)
	}

	if !turno.CanBeCancelled() {
		s.logger.Warn("Cancel: turno id=%d is %s", id, turno.Status)
		return nil, fmt.Errorf("%w: cannot cancel a %s turno", domain.ErrInvalidTransition, turno.Status)
	}

	return s.cancel(ctx, "Cancel", turno, req.Actor, req.Reason, events.TurnoCancelled)
}

// ListByClient получает историю бронирований клиента
// Опционально фильтрует по периоду, статусу и услуге
func (s *Service) ListByClient(ctx context.Context, req *models.ListClientTurnosRequest) (*models.TurnoListResponse, error) {
	s.logger.Info("ListByClient: client=%d, from=%v, to=%v, status=%v, service=%v", req.ClientID, req.From, req.To, req.Status, req.ServiceID)

	if !req.Actor.IsAdmin() && !(req.Actor.Role == domain.RoleClient && req.Actor.UserID == req.ClientID) {
		s.logger.Warn("ListByClient: user=%d cannot list turnos of client=%d", req.Actor.UserID, req.ClientID)
		return nil, fmt.Errorf("%w: turnos of client %d", domain.ErrPermissionDenied, req.ClientID)
	}

	filter, err := toFilter(req.Status, req.From, req.To, req.ServiceID)
	if err != nil {
		return nil, err
	}

	turnos, err := s.turnoRepo.ListByClient(ctx, req.ClientID, filter)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTurnoList(turnos), nil
}

// ListByProfessional получает бронирования профессионала за период
func (s *Service) ListByProfessional(ctx context.Context, req *models.ListProfessionalTurnosRequest) (*models.TurnoListResponse, error) {
	s.logger.Info("ListByProfessional: professional=%d, from=%v, to=%v, status=%v, service=%v", req.ProfessionalID, req.From, req.To, req.Status, req.ServiceID)

	if !req.Actor.IsAdmin() && !(req.Actor.Role == domain.RoleProfessional && req.Actor.UserID == req.ProfessionalID) {
		s.logger.Warn("ListByProfessional: user=%d cannot list turnos of professional=%d", req.Actor.UserID, req.ProfessionalID)
		return nil, fmt.Errorf("%w: turnos of professional %d", domain.ErrPermissionDenied, req.ProfessionalID)
	}

	filter, err := toFilter(req.Status, req.From, req.To, req.ServiceID)
	if err != nil {
		return nil, err
	}

	turnos, err := s.turnoRepo.ListByProfessional(ctx, req.ProfessionalID, filter)
	if err != nil {
		s.logger.Error("ListByProfessional: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: ListByProfessional - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTurnoList(turnos), nil
}

// CanDeactivateService сообщает, можно ли выключить услугу
// Нельзя, пока на нее ссылаются незавершенные бронирования
func (s *Service) CanDeactivateService(ctx context.Context, serviceID int64) (bool, int, error) {
	count, err := s.turnoRepo.CountActiveByService(ctx, serviceID)
	if err != nil {
		s.logger.Error("CanDeactivateService: failed to count turnos for service=%d: %v", serviceID, err)
		return false, 0, fmt.Errorf("%w: CanDeactivateService - repository error: %v", ErrInternal, err)
	}
	return count == 0, count, nil
}

// apply выполняет переход статуса с проверкой прав и условным обновлением
func (s *Service) apply(ctx context.Context, id int64, actor domain.Actor, tr transition) (*models.TurnoResponse, error) {
	s.logger.Info("%s: turno id=%d by user=%d (%s)", tr.op, id, actor.UserID, actor.Role)

	// 1. Получаем бронирование
	turno, err := s.load(ctx, tr.op, id)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем права доступа
	if !tr.allowed(actor, turno) {
		s.logger.Warn("%s: user=%d is not allowed for turno id=%d", tr.op, actor.UserID, id)
		return nil, fmt.Errorf("%w: %s turno %d", domain.ErrPermissionDenied, strings.ToLower(tr.op), id)
	}

	// 3. Проверяем переход по машине состояний
	if !domain.CanTransition(turno.Status, tr.to) {
		s.logger.Warn("%s: turno id=%d cannot move %s -> %s", tr.op, id, turno.Status, tr.to)
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, turno.Status, tr.to)
	}

	// 4. Условное обновление
	from := turno.Status
	if err := s.turnoRepo.UpdateStatus(ctx, id, from, tr.to); err != nil {
		return nil, s.conflict(ctx, tr.op, id, from, err)
	}

	turno.Status = tr.to
	s.metrics.ObserveTransition(string(tr.to))
	s.emitter.Emit(ctx, tr.event, turno, &actor.UserID)

	s.logger.Info("%s: turno id=%d moved %s -> %s", tr.op, id, from, tr.to)
	return models.FromDomainTurno(s.reload(ctx, turno)), nil
}

func (s *Service) cancel(ctx context.Context, op string, turno *domain.Turno, actor domain.Actor, reason *string, event events.Type) (*models.TurnoResponse, error) {
	from := turno.Status
	if err := s.turnoRepo.Cancel(ctx, turno.ID, from, actor.UserID, reason); err != nil {
		return nil, s.conflict(ctx, op, turno.ID, from, err)
	}

	turno.Status = domain.StatusCancelled
	turno.CancelledBy = &actor.UserID
	turno.CancellationReason = reason

	s.metrics.ObserveTransition(string(domain.StatusCancelled))
	s.emitter.Emit(ctx, event, turno, &actor.UserID)

	s.logger.Info("%s: turno id=%d cancelled from %s by user=%d", op, turno.ID, from, actor.UserID)
	return models.FromDomainTurno(s.reload(ctx, turno)), nil
}

// conflict разбирает ошибку условного обновления: если статус поменялся конкурентно,
// перечитываем бронирование и возвращаем InvalidTransition или NotFound
func (s *Service) conflict(ctx context.Context, op string, id int64, from domain.TurnoStatus, err error) error {
	if !errors.Is(err, turnoRepo.ErrStatusConflict) {
		s.logger.Error("%s: repository error for turno id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	current, err := s.turnoRepo.GetByID(ctx, id)
	if errors.Is(err, turnoRepo.ErrTurnoNotFound) {
		return fmt.Errorf("%w: turno %d", domain.ErrNotFound, id)
	}
	if err != nil {
		s.logger.Error("%s: failed to re-read turno id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - re-read: %v", ErrInternal, op, err)
	}

	s.logger.Warn("%s: turno id=%d changed concurrently from %s to %s", op, id, from, current.Status)
	return fmt.Errorf("%w: turno %d is now %s", domain.ErrInvalidTransition, id, current.Status)
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Turno, error) {
	turno, err := s.turnoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, turnoRepo.ErrTurnoNotFound) {
			s.logger.Warn("%s: turno id=%d not found", op, id)
			return nil, fmt.Errorf("%w: turno %d", domain.ErrNotFound, id)
		}
		s.logger.Error("%s: repository error for turno id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return turno, nil
}

// reload перечитывает бронирование после обновления, при ошибке возвращает локальную копию
func (s *Service) reload(ctx context.Context, turno *domain.Turno) *domain.Turno {
	fresh, err := s.turnoRepo.GetByID(ctx, turno.ID)
	if err != nil {
		s.logger.Warn("reload: failed to re-read turno id=%d: %v", turno.ID, err)
		return turno
	}
	return fresh
}

func validateReason(reason *string) error {
	if reason != nil && utf8.RuneCountInString(*reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", domain.ErrValidation, domain.MaxCancellationReasonLength)
	}
	return nil
}

func toFilter(status *string, from, to *time.Time, serviceID *int64) (turnoRepo.ListFilter, error) {
	filter := turnoRepo.ListFilter{From: from, To: to, ServiceID: serviceID}
	if from != nil && to != nil && from.After(*to) {
		return filter, fmt.Errorf("%w: from must not be after to", domain.ErrValidation)
	}
	if serviceID != nil && *serviceID <= 0 {
		return filter, fmt.Errorf("%w: serviceId must be positive", domain.ErrValidation)
	}
	if status != nil && *status != "" {
		st, err := models.ToDomainTurnoStatus(*status)
		if err != nil {
			return filter, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *status)
		}
		filter.Status = &st
	}
	return filter, nil
}
