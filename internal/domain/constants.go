package domain

import "github.com/shopspring/decimal"

// Planner defaults
const (
	DefaultHorizonDays = 14
	MaxHorizonDays     = 60
	SlotStepMinutes    = 60
)

// Business validation constants
const (
	MinScore                    = 1
	MaxScore                    = 5
	MaxAddressLength            = 255
	MaxObservationsLength       = 500
	MaxCommentLength            = 1000
	MaxCancellationReasonLength = 500
	MaxPromoCodeLength          = 50
)

// MoneyPlaces количество знаков после запятой для денежных сумм
const MoneyPlaces = 2

// RatingAveragePlaces точность хранимой средней оценки (NUMERIC(3,2))
const RatingAveragePlaces = 2

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

var (
	// MaxPercentageDiscount верхняя граница процентной скидки
	MaxPercentageDiscount = decimal.NewFromInt(100)

	// DefaultMaxFixedDiscount верхняя граница фиксированной скидки
	DefaultMaxFixedDiscount = decimal.RequireFromString("999999.99")

	// MinDiscountValue минимальное значение скидки любого типа
	MinDiscountValue = decimal.RequireFromString("0.01")
)

// ActiveStatuses статусы, занимающие слот профессионала
var ActiveStatuses = []TurnoStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// ActiveStatusStrings ActiveStatuses в виде строк (для SQL фильтров)
func ActiveStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
