package domain

import "errors"

// Error kinds shared by every layer. Layers wrap them with fmt.Errorf("%w: ...")
// so callers match with errors.Is.
var (
	// ErrValidation входные данные не прошли проверку
	ErrValidation = errors.New("validation error")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable услуга, категория или профессионал неактивны
	// либо профессионал не оказывает услугу
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrSlotUnavailable слот вне расписания или уже занят
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrInvalidTransition переход статуса не разрешён
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrPermissionDenied у пользователя нет прав на операцию
	ErrPermissionDenied = errors.New("permission denied")

	// ErrPromotionCodeInvalid промокод не найден или неприменим (только предупреждение)
	ErrPromotionCodeInvalid = errors.New("promotion code invalid")

	// ErrAlreadyRated бронирование уже оценено
	ErrAlreadyRated = errors.New("turno already rated")

	// ErrNotCompleted оценить можно только завершённое бронирование
	ErrNotCompleted = errors.New("turno not completed")
)
