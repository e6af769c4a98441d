package turno

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/ptr"
)

type fakeResult struct {
	rows int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

// execRecorder реализует только ExecContext
type execRecorder struct {
	DBExecutor
	query  string
	args   []interface{}
	result sql.Result
	err    error
}

func (e *execRecorder) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query = query
	e.args = args
	return e.result, e.err
}

func TestUpdateStatus_ConditionalOnExpectedStatus(t *testing.T) {
	db := &execRecorder{result: fakeResult{rows: 1}}
	repo := NewRepository(db)

	err := repo.UpdateStatus(context.Background(), 5, domain.StatusPending, domain.StatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE turnos SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3", db.query)
	assert.Equal(t, []interface{}{domain.StatusConfirmed, int64(5), domain.StatusPending}, db.args)
}

func TestUpdateStatus_NoRowsIsConflict(t *testing.T) {
	repo := NewRepository(&execRecorder{result: fakeResult{rows: 0}})

	err := repo.UpdateStatus(context.Background(), 5, domain.StatusPending, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestCancel_RecordsActorAndReason(t *testing.T) {
	db := &execRecorder{result: fakeResult{rows: 1}}
	repo := NewRepository(db)

	err := repo.Cancel(context.Background(), 9, domain.StatusConfirmed, 42, ptr.Ptr("cliente enfermo"))
	require.NoError(t, err)

	assert.Contains(t, db.query, "cancelled_by = $2")
	assert.Contains(t, db.query, "cancelled_at = NOW()")
	assert.Contains(t, db.query, "WHERE id = $4 AND status = $5")
}

func TestUpdateDetails_UniqueViolationIsSlotTaken(t *testing.T) {
	db := &execRecorder{err: &pq.Error{Code: "23505", Constraint: "turnos_active_slot_uniq"}}
	repo := NewRepository(db)

	err := repo.UpdateDetails(context.Background(), 3, domain.StatusPending, Details{
		Date:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:    "10:00",
		Address: "Av. Siempre Viva 742",
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Contains(t, db.args, "2025-06-02")
}

func TestMapWriteError(t *testing.T) {
	assert.ErrorIs(t, mapWriteError("op", &pq.Error{Code: "40001"}), ErrSerialization)
	assert.ErrorIs(t, mapWriteError("op", &pq.Error{Code: "23505"}), ErrSlotTaken)
	assert.ErrorIs(t, mapWriteError("op", errors.New("connection refused")), ErrExecQuery)
}
