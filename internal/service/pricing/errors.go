package pricing

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках расчета цены
	ErrInternal = errors.New("pricing.service: internal error")
)
