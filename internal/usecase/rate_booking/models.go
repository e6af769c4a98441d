package rate_booking

import "github.com/m04kA/servihogar-turnos/internal/domain"

// Request запрос на оценку завершенного бронирования
type Request struct {
	Actor   domain.Actor
	TurnoID int64
	Score   int
	Comment *string
}

// Response созданная оценка и пересчитанный рейтинг профессионала
type Response struct {
	Rating             *domain.Rating
	ProfessionalRating *domain.ProfessionalRating
}
