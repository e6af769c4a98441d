package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rating is a client's score for a completed booking (calificacion)
type Rating struct {
	ID        int64
	TurnoID   int64
	ClientID  int64
	Score     int
	Comment   *string
	CreatedAt time.Time
}

// ProfessionalRating is the aggregated score of a professional.
// Average is the mean of all scores rounded half-up to RatingAveragePlaces.
type ProfessionalRating struct {
	ProfessionalID int64
	Average        decimal.Decimal
	Count          int
	UpdatedAt      time.Time
}

// IsValidScore returns true for scores in [MinScore, MaxScore]
func IsValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
