package turno

import "errors"

var (
	// ErrTurnoNotFound возвращается, когда бронирование не найдено
	ErrTurnoNotFound = errors.New("turno.repository: turno not found")

	// ErrSlotTaken возвращается при нарушении уникальности активного слота профессионала
	ErrSlotTaken = errors.New("turno.repository: slot already taken")

	// ErrSerialization возвращается при конфликте сериализуемой транзакции
	ErrSerialization = errors.New("turno.repository: serialization failure")

	// ErrStatusConflict возвращается, когда условное обновление не затронуло строк
	// (статус изменился конкурентно или бронирование отсутствует)
	ErrStatusConflict = errors.New("turno.repository: status precondition failed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("turno.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("turno.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("turno.repository: failed to scan row")
)
