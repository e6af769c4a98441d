package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/dbmetrics"
	"github.com/m04kA/servihogar-turnos/pkg/psqlbuilder"
)

const (
	table         = "promotions"
	servicesTable = "promotion_services"
)

var columns = []string{
	"id",
	"title",
	"description",
	"discount_kind",
	"discount_value",
	"category_id",
	"starts_at",
	"ends_at",
	"active",
	"code",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения промо-акций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промо-акций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveAt возвращает активные промо-акции, окно действия которых содержит at
// Целевые услуги подгружаются одним дополнительным запросом
func (r *Repository) GetActiveAt(ctx context.Context, at time.Time) ([]*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.LtOrEq{"starts_at": at}).
		Where(squirrel.GtOrEq{"ends_at": at}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveAt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveAt - execute query: %v", ErrExecQuery, err)
	}
	promotions, err := scanPromotions(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	if err := r.loadServices(ctx, promotions); err != nil {
		return nil, err
	}

	return promotions, nil
}

// GetByID получает промо-акцию по ID вместе с целевыми услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает промо-акцию по коду без учета регистра
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Expr("LOWER(code) = ?", strings.ToLower(code)))
}

func (r *Repository) getOne(ctx context.Context, op string, pred squirrel.Sqlizer) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(pred).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanPromotion(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan promotion: %v", ErrScanRow, op, err)
	}

	if err := r.loadServices(ctx, []*domain.Promotion{p}); err != nil {
		return nil, err
	}

	return p, nil
}

// loadServices заполняет ServiceIDs у переданных промо-акций
func (r *Repository) loadServices(ctx context.Context, promotions []*domain.Promotion) error {
	if len(promotions) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Promotion, len(promotions))
	ids := make([]int64, 0, len(promotions))
	for _, p := range promotions {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query, args, err := psqlbuilder.Select("promotion_id", "service_id").
		From(servicesTable).
		Where(squirrel.Eq{"promotion_id": ids}).
		OrderBy("promotion_id ASC, service_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var promotionID, serviceID int64
		if err := rows.Scan(&promotionID, &serviceID); err != nil {
			return fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}
		if p, ok := byID[promotionID]; ok {
			p.ServiceIDs = append(p.ServiceIDs, serviceID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPromotion(row rowScanner) (*domain.Promotion, error) {
	var p domain.Promotion
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Kind,
		&p.Value,
		&p.CategoryID,
		&p.StartsAt,
		&p.EndsAt,
		&p.Active,
		&p.Code,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.StartsAt = p.StartsAt.UTC()
	p.EndsAt = p.EndsAt.UTC()
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

func scanPromotions(rows *sql.Rows) ([]*domain.Promotion, error) {
	promotions := make([]*domain.Promotion, 0)

	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPromotions - scan row: %v", ErrScanRow, err)
		}
		promotions = append(promotions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPromotions - rows error: %v", ErrScanRow, err)
	}

	return promotions, nil
}
