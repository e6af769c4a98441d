package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/dbmetrics"
	"github.com/m04kA/servihogar-turnos/pkg/pgerr"
	"github.com/m04kA/servihogar-turnos/pkg/psqlbuilder"
)

const (
	ratingsTable   = "calificaciones"
	aggregateTable = "professional_ratings"
)

// Repository репозиторий для работы с оценками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оценок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет оценку бронирования
// Повторная оценка того же бронирования возвращает ErrAlreadyRated
func (r *Repository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(ratingsTable).
		Columns("turno_id", "client_id", "score", "comment").
		Values(rating.TurnoID, rating.ClientID, rating.Score, rating.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rating.ID, &createdAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - turno_id=%d", ErrAlreadyRated, rating.TurnoID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rating.CreatedAt = createdAt.Time

	return rating, nil
}

// ExistsForTurno проверяет, оценено ли бронирование
func (r *Repository) ExistsForTurno(ctx context.Context, turnoID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(ratingsTable).
		Where(squirrel.Eq{"turno_id": turnoID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForTurno - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsForTurno - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// RecalculateProfessional пересчитывает среднюю оценку профессионала по всем его оценкам
// и сохраняет результат в professional_ratings
func (r *Repository) RecalculateProfessional(ctx context.Context, professionalID int64) (*domain.ProfessionalRating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := recalculateQuery(professionalID)
	if err != nil {
		return nil, fmt.Errorf("%w: RecalculateProfessional - build upsert query: %v", ErrBuildQuery, err)
	}

	pr, err := scanProfessionalRating(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: RecalculateProfessional - execute upsert: %v", ErrExecQuery, err)
	}

	return pr, nil
}

// recalculateQuery строит upsert агрегата: среднее округляется до domain.RatingAveragePlaces
func recalculateQuery(professionalID int64) (string, []interface{}, error) {
	aggregate := squirrel.Select(
		"t.professional_id",
		fmt.Sprintf("ROUND(AVG(c.score)::numeric, %d)", domain.RatingAveragePlaces),
		"COUNT(*)",
		"NOW()",
	).
		From(ratingsTable + " c").
		Join("turnos t ON t.id = c.turno_id").
		Where(squirrel.Eq{"t.professional_id": professionalID}).
		GroupBy("t.professional_id")

	return psqlbuilder.Insert(aggregateTable).
		Columns("professional_id", "average", "ratings_count", "updated_at").
		Select(aggregate).
		Suffix("ON CONFLICT (professional_id) DO UPDATE SET " +
			"average = EXCLUDED.average, ratings_count = EXCLUDED.ratings_count, updated_at = EXCLUDED.updated_at " +
			"RETURNING professional_id, average, ratings_count, updated_at").
		ToSql()
}

// GetProfessionalRating получает агрегированную оценку профессионала
func (r *Repository) GetProfessionalRating(ctx context.Context, professionalID int64) (*domain.ProfessionalRating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("professional_id", "average", "ratings_count", "updated_at").
		From(aggregateTable).
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalRating - build select query: %v", ErrBuildQuery, err)
	}

	pr, err := scanProfessionalRating(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalRating - scan rating: %v", ErrScanRow, err)
	}

	return pr, nil
}

func scanProfessionalRating(row interface{ Scan(...interface{}) error }) (*domain.ProfessionalRating, error) {
	var pr domain.ProfessionalRating
	var updatedAt sql.NullTime

	if err := row.Scan(&pr.ProfessionalID, &pr.Average, &pr.Count, &updatedAt); err != nil {
		return nil, err
	}
	pr.UpdatedAt = updatedAt.Time

	return &pr, nil
}
