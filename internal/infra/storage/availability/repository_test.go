package availability

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

type okResult struct{}

func (okResult) LastInsertId() (int64, error) { return 0, nil }
func (okResult) RowsAffected() (int64, error) { return 1, nil }

type execLog struct {
	DBExecutor
	queries []string
	args    [][]interface{}
	failAt  int
}

func (e *execLog) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.queries = append(e.queries, query)
	e.args = append(e.args, args)
	if e.failAt > 0 && len(e.queries) == e.failAt {
		return nil, errors.New("boom")
	}
	return okResult{}, nil
}

func TestReplaceWeek_DeletesThenInserts(t *testing.T) {
	db := &execLog{}
	repo := NewRepository(db)

	err := repo.ReplaceWeek(context.Background(), 7, []*domain.AvailabilityWindow{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: 2, StartTime: "14:00", EndTime: "18:00"},
	})
	require.NoError(t, err)
	require.Len(t, db.queries, 2)

	assert.Equal(t, "DELETE FROM availability_windows WHERE professional_id = $1", db.queries[0])
	assert.Contains(t, db.queries[1], "VALUES ($1,$2,$3,$4),($5,$6,$7,$8)")
	assert.Contains(t, db.queries[1], "ON CONFLICT (professional_id, day_of_week)")
	assert.Len(t, db.args[1], 8)
}

func TestReplaceWeek_EmptyWeekOnlyDeletes(t *testing.T) {
	db := &execLog{}
	repo := NewRepository(db)

	require.NoError(t, repo.ReplaceWeek(context.Background(), 7, nil))
	assert.Len(t, db.queries, 1)
}

func TestReplaceWeek_InsertFailure(t *testing.T) {
	db := &execLog{failAt: 2}
	repo := NewRepository(db)

	err := repo.ReplaceWeek(context.Background(), 7, []*domain.AvailabilityWindow{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"},
	})
	assert.ErrorIs(t, err, ErrExecQuery)
}
