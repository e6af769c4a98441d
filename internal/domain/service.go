package domain

import "github.com/shopspring/decimal"

// Service is a catalog entry a client can book. Owned by the catalog service.
type Service struct {
	ID              int64
	CategoryID      int64
	ProfessionalID  *int64 // owning professional, if any
	Name            string
	BasePrice       decimal.Decimal
	DurationMinutes int
	Active          bool
	CategoryActive  bool
}

// IsBookable returns true if both the service and its category are active
func (s *Service) IsBookable() bool {
	return s.Active && s.CategoryActive
}

// Professional is a provider of services. Owned by the catalog service.
type Professional struct {
	ID         int64
	Name       string
	Active     bool
	ServiceIDs []int64
}

// Offers returns true if the professional provides the service
func (p *Professional) Offers(service *Service) bool {
	if service.ProfessionalID != nil && *service.ProfessionalID == p.ID {
		return true
	}
	for _, id := range p.ServiceIDs {
		if id == service.ID {
			return true
		}
	}
	return false
}
