package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", domain.ErrValidation)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalId must be positive", domain.ErrValidation)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", domain.ErrValidation)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	// Валидируем формат времени
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", domain.ErrValidation, err)
	}

	req.Address = strings.TrimSpace(req.Address)
	if req.Address == "" {
		return fmt.Errorf("%w: address is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", domain.ErrValidation, domain.MaxAddressLength)
	}

	if req.Observations != nil && utf8.RuneCountInString(*req.Observations) > domain.MaxObservationsLength {
		return fmt.Errorf("%w: observations exceed %d characters", domain.ErrValidation, domain.MaxObservationsLength)
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", domain.ErrValidation)
	}
	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180) {
		return fmt.Errorf("%w: coordinates out of range", domain.ErrValidation)
	}

	if req.PromoCode != nil && utf8.RuneCountInString(*req.PromoCode) > domain.MaxPromoCodeLength {
		return fmt.Errorf("%w: promo code exceeds %d characters", domain.ErrValidation, domain.MaxPromoCodeLength)
	}

	return nil
}

// checkPermission бронирование создает сам клиент или администратор
func checkPermission(actor domain.Actor, clientID int64) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == domain.RoleClient && actor.UserID == clientID {
		return nil
	}
	return fmt.Errorf("%w: only the client or an admin can book", domain.ErrPermissionDenied)
}
