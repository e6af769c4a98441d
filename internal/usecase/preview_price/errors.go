package preview_price

import "errors"

var (
	// ErrInternal внутренняя ошибка use case
	ErrInternal = errors.New("preview_price.usecase: internal error")
)
