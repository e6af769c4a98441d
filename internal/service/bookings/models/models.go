package models

import (
	"errors"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid turno status")
)

// Request модели

// CancelTurnoRequest запрос на отмену бронирования
type CancelTurnoRequest struct {
	Actor  domain.Actor
	Reason *string `json:"reason,omitempty"`
}

// ListClientTurnosRequest запрос на получение бронирований клиента
type ListClientTurnosRequest struct {
	Actor     domain.Actor
	ClientID  int64      `json:"clientId"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
	Status    *string    `json:"status,omitempty"`
	ServiceID *int64     `json:"serviceId,omitempty"`
}

// ListProfessionalTurnosRequest запрос на получение бронирований профессионала
type ListProfessionalTurnosRequest struct {
	Actor          domain.Actor
	ProfessionalID int64      `json:"professionalId"`
	From           *time.Time `json:"from,omitempty"`   // Начало периода (опционально)
	To             *time.Time `json:"to,omitempty"`     // Конец периода (опционально)
	Status         *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
	ServiceID      *int64     `json:"serviceId,omitempty"`
}

// Response модели

// TurnoResponse ответ с данными бронирования
type TurnoResponse struct {
	ID             int64    `json:"id"`
	ClientID       int64    `json:"clientId"`
	ProfessionalID int64    `json:"professionalId"`
	ServiceID      int64    `json:"serviceId"`
	PromotionID    *int64   `json:"promotionId,omitempty"`
	Date           string   `json:"date"` // "2025-10-15"
	Time           string   `json:"time"` // "10:00"
	Address        string   `json:"address"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Observations   *string  `json:"observations,omitempty"`
	Status         string   `json:"status"`

	// Снимок цены на момент создания
	BasePrice  string `json:"basePrice"`
	Discount   string `json:"discount"`
	FinalPrice string `json:"finalPrice"`

	CancelledBy        *int64  `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TurnoListResponse ответ со списком бронирований
type TurnoListResponse struct {
	Turnos []TurnoResponse `json:"turnos"`
}

// Методы конвертации

// FromDomainTurno конвертирует domain модель в DTO
func FromDomainTurno(t *domain.Turno) *TurnoResponse {
	if t == nil {
		return nil
	}

	resp := &TurnoResponse{
		ID:                 t.ID,
		ClientID:           t.ClientID,
		ProfessionalID:     t.ProfessionalID,
		ServiceID:          t.ServiceID,
		PromotionID:        t.PromotionID,
		Date:               t.Date.Format(domain.DateFormat),
		Time:               t.Time.String(),
		Address:            t.Address,
		Latitude:           t.Latitude,
		Longitude:          t.Longitude,
		Observations:       t.Observations,
		Status:             string(t.Status),
		BasePrice:          t.BasePrice.StringFixed(domain.MoneyPlaces),
		Discount:           t.Discount.StringFixed(domain.MoneyPlaces),
		FinalPrice:         t.FinalPrice.StringFixed(domain.MoneyPlaces),
		CancelledBy:        t.CancelledBy,
		CancellationReason: t.CancellationReason,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if t.CancelledAt != nil {
		cancelledStr := t.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainTurnoList конвертирует список domain моделей в DTO
func FromDomainTurnoList(turnos []*domain.Turno) *TurnoListResponse {
	resp := &TurnoListResponse{
		Turnos: make([]TurnoResponse, 0, len(turnos)),
	}

	for _, t := range turnos {
		if tr := FromDomainTurno(t); tr != nil {
			resp.Turnos = append(resp.Turnos, *tr)
		}
	}

	return resp
}

// ToDomainTurnoStatus конвертирует строку в domain.TurnoStatus с валидацией
func ToDomainTurnoStatus(status string) (domain.TurnoStatus, error) {
	s := domain.TurnoStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
