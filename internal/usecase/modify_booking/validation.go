package modify_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TurnoID <= 0 {
		return fmt.Errorf("%w: turno id must be positive", domain.ErrValidation)
	}

	if req.Date == nil && req.Time == nil && req.Address == nil && req.Observations == nil {
		return fmt.Errorf("%w: nothing to modify", domain.ErrValidation)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date is empty", domain.ErrValidation)
	}

	if req.Time != nil {
		if err := req.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time format: %v", domain.ErrValidation, err)
		}
	}

	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return fmt.Errorf("%w: address must not be empty", domain.ErrValidation)
		}
		if utf8.RuneCountInString(address) > domain.MaxAddressLength {
			return fmt.Errorf("%w: address exceeds %d characters", domain.ErrValidation, domain.MaxAddressLength)
		}
		req.Address = &address
	}

	if req.Observations != nil && utf8.RuneCountInString(*req.Observations) > domain.MaxObservationsLength {
		return fmt.Errorf("%w: observations exceed %d characters", domain.ErrValidation, domain.MaxObservationsLength)
	}

	return nil
}
