package modify_booking

import "errors"

var (
	// ErrInternal внутренняя ошибка use case
	ErrInternal = errors.New("modify_booking.usecase: internal error")
)
