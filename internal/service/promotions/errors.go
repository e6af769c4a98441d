package promotions

import "errors"

var (
	// ErrPromotionNotFound возвращается, когда промо-акция не найдена
	ErrPromotionNotFound = errors.New("promotions.service: promotion not found")

	// ErrInvalidPromotion возвращается, когда запись промо-акции нарушает ограничения
	ErrInvalidPromotion = errors.New("promotions.service: invalid promotion")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("promotions.service: internal error")
)
