package turno

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/dbmetrics"
	"github.com/m04kA/servihogar-turnos/pkg/pgerr"
	"github.com/m04kA/servihogar-turnos/pkg/psqlbuilder"
	"github.com/m04kA/servihogar-turnos/pkg/types"
)

const table = "turnos"

var columns = []string{
	"id",
	"client_id",
	"professional_id",
	"service_id",
	"promotion_id",
	"date",
	"time",
	"address",
	"latitude",
	"longitude",
	"observations",
	"status",
	"base_price",
	"discount",
	"final_price",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Details изменяемые поля бронирования
type Details struct {
	Date         time.Time
	Time         types.TimeString
	Address      string
	Observations *string
}

// ListFilter фильтр списка бронирований
// Нулевые значения полей не ограничивают выборку
type ListFilter struct {
	Status    *domain.TurnoStatus
	From      *time.Time
	To        *time.Time
	ServiceID *int64
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Нарушение уникального индекса активного слота возвращает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, t *domain.Turno) (*domain.Turno, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"client_id",
			"professional_id",
			"service_id",
			"promotion_id",
			"date",
			"time",
			"address",
			"latitude",
			"longitude",
			"observations",
			"status",
			"base_price",
			"discount",
			"final_price",
		).
		Values(
			t.ClientID,
			t.ProfessionalID,
			t.ServiceID,
			t.PromotionID,
			t.Date.Format(domain.DateFormat),
			t.Time,
			t.Address,
			t.Latitude,
			t.Longitude,
			t.Observations,
			t.Status,
			t.BasePrice,
			t.Discount,
			t.FinalPrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, mapWriteError("Create - execute insert", err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Turno, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTurno(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTurnoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan turno: %v", ErrScanRow, err)
	}

	return t, nil
}

// GetActiveByProfessional возвращает активные бронирования профессионала в диапазоне дат [from, to]
func (r *Repository) GetActiveByProfessional(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.Turno, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"status": domain.ActiveStatusStrings()}).
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)}).
		OrderBy("date ASC, time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTurnos(rows)
}

// ListByClient возвращает бронирования клиента, новые сверху
func (r *Repository) ListByClient(ctx context.Context, clientID int64, f ListFilter) ([]*domain.Turno, error) {
	return r.list(ctx, "ListByClient", squirrel.Eq{"client_id": clientID}, f, "date DESC, time DESC")
}

// ListByProfessional возвращает бронирования профессионала в хронологическом порядке
func (r *Repository) ListByProfessional(ctx context.Context, professionalID int64, f ListFilter) ([]*domain.Turno, error) {
	return r.list(ctx, "ListByProfessional", squirrel.Eq{"professional_id": professionalID}, f, "date ASC, time ASC")
}

func (r *Repository) list(ctx context.Context, op string, owner squirrel.Eq, f ListFilter, order string) ([]*domain.Turno, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(owner)

	if f.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *f.Status})
	}
	if f.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": f.From.Format(domain.DateFormat)})
	}
	if f.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": f.To.Format(domain.DateFormat)})
	}
	if f.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *f.ServiceID})
	}

	query, args, err := selectBuilder.OrderBy(order).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanTurnos(rows)
}

// ExistsActiveAtSlot проверяет, занят ли слот профессионала активным бронированием
// excludeID позволяет не учитывать само изменяемое бронирование (0 = не исключать)
func (r *Repository) ExistsActiveAtSlot(ctx context.Context, professionalID int64, date time.Time, at types.TimeString, excludeID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"date":            date.Format(domain.DateFormat),
			"time":            at,
			"status":          domain.ActiveStatusStrings(),
		})

	if excludeID > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAtSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, mapWriteError("ExistsActiveAtSlot - scan count", err)
	}

	return count > 0, nil
}

// UpdateStatus условно переводит бронирование из статуса from в статус to
// Если строка не обновлена, возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.TurnoStatus) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, "UpdateStatus", query, args)
}

// Cancel условно отменяет бронирование, находящееся в статусе from
func (r *Repository) Cancel(ctx context.Context, id int64, from domain.TurnoStatus, cancelledBy int64, reason *string) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, "Cancel", query, args)
}

// UpdateDetails условно меняет дату, время, адрес и примечания бронирования в статусе from
// Цена не пересчитывается
func (r *Repository) UpdateDetails(ctx context.Context, id int64, from domain.TurnoStatus, d Details) error {
	query, args, err := psqlbuilder.Update(table).
		Set("date", d.Date.Format(domain.DateFormat)).
		Set("time", d.Time).
		Set("address", d.Address).
		Set("observations", d.Observations).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, "UpdateDetails", query, args)
}

// CountActiveByPromotion количество активных бронирований с промо-акцией
func (r *Repository) CountActiveByPromotion(ctx context.Context, promotionID int64) (int, error) {
	return r.countActive(ctx, "CountActiveByPromotion", squirrel.Eq{"promotion_id": promotionID})
}

// CountActiveByService количество активных бронирований услуги
func (r *Repository) CountActiveByService(ctx context.Context, serviceID int64) (int, error) {
	return r.countActive(ctx, "CountActiveByService", squirrel.Eq{"service_id": serviceID})
}

func (r *Repository) countActive(ctx context.Context, op string, pred squirrel.Eq) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(pred).
		Where(squirrel.Eq{"status": domain.ActiveStatusStrings()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	return count, nil
}

func (r *Repository) execConditional(ctx context.Context, op string, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// mapWriteError переводит ошибки Postgres в ошибки репозитория
func mapWriteError(op string, err error) error {
	switch {
	case pgerr.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrSlotTaken, op, err)
	case pgerr.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTurno(row rowScanner) (*domain.Turno, error) {
	var t domain.Turno
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.ClientID,
		&t.ProfessionalID,
		&t.ServiceID,
		&t.PromotionID,
		&t.Date,
		&t.Time,
		&t.Address,
		&t.Latitude,
		&t.Longitude,
		&t.Observations,
		&t.Status,
		&t.BasePrice,
		&t.Discount,
		&t.FinalPrice,
		&t.CancelledBy,
		&t.CancellationReason,
		&t.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

// scanTurnos сканирует результаты запроса в слайс бронирований
func scanTurnos(rows *sql.Rows) ([]*domain.Turno, error) {
	turnos := make([]*domain.Turno, 0)

	for rows.Next() {
		t, err := scanTurno(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTurnos - scan row: %v", ErrScanRow, err)
		}
		turnos = append(turnos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTurnos - rows error: %v", ErrScanRow, err)
	}

	return turnos, nil
}
