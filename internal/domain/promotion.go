package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind is the way a promotion reduces the price
type DiscountKind string

const (
	DiscountPercentage  DiscountKind = "percentage"
	DiscountFixedAmount DiscountKind = "fixed_amount"
)

// IsValid returns true for known discount kinds
func (k DiscountKind) IsValid() bool {
	return k == DiscountPercentage || k == DiscountFixedAmount
}

// Promotion is a time-bounded discount rule scoped to a category,
// to specific services, or to every service.
type Promotion struct {
	ID          int64
	Title       string
	Description *string
	Kind        DiscountKind
	Value       decimal.Decimal
	CategoryID  *int64
	ServiceIDs  []int64
	StartsAt    time.Time
	EndsAt      time.Time
	Active      bool
	Code        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsGlobal returns true if the promotion targets every service
func (p *Promotion) IsGlobal() bool {
	return p.CategoryID == nil && len(p.ServiceIDs) == 0
}

// TargetsService returns true if the service is listed explicitly
func (p *Promotion) TargetsService(serviceID int64) bool {
	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// InWindow returns true if start <= at <= end
func (p *Promotion) InWindow(at time.Time) bool {
	return !at.Before(p.StartsAt) && !at.After(p.EndsAt)
}
