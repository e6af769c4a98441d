package rate_booking

import "errors"

var (
	// ErrInternal внутренняя ошибка use case
	ErrInternal = errors.New("rate_booking.usecase: internal error")
)
