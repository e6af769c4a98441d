package rate_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TurnoID <= 0 {
		return fmt.Errorf("%w: turno id must be positive", domain.ErrValidation)
	}

	if !domain.IsValidScore(req.Score) {
		return fmt.Errorf("%w: score must be between %d and %d", domain.ErrValidation, domain.MinScore, domain.MaxScore)
	}

	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", domain.ErrValidation, domain.MaxCommentLength)
	}

	return nil
}
