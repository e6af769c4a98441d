package get_available_slots

import (
	"fmt"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// validateRequest валидирует входные данные и подставляет горизонт по умолчанию
func validateRequest(req *Request, settings Settings) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalId must be positive", domain.ErrValidation)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", domain.ErrValidation)
	}

	if req.HorizonDays < 0 || req.HorizonDays > settings.MaxHorizonDays {
		return fmt.Errorf("%w: days must be between 1 and %d", domain.ErrValidation, settings.MaxHorizonDays)
	}

	if req.HorizonDays == 0 {
		req.HorizonDays = settings.DefaultHorizonDays
	}

	return nil
}
