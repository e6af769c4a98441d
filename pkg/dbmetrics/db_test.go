package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/servihogar-turnos/pkg/metrics"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := fakeDB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(db), GetExecutor(ctx, db))

	tx := fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, db))
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("SELECT id FROM turnos"))
	assert.Equal(t, "insert", operationName("  insert into turnos (id) values ($1)"))
	assert.Equal(t, "update", operationName("UPDATE turnos SET status = $1"))
	assert.Equal(t, "other", operationName("LOCK TABLE turnos"))
	assert.Equal(t, "unknown", operationName(""))
}

func TestDB_Observe(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	d := Wrap(nil, m, "test")

	d.observe("SELECT 1", time.Now(), nil)
	d.observe("SELECT 1", time.Now(), sql.ErrNoRows)
	d.observe("UPDATE turnos SET status = $1", time.Now(), errors.New("boom"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("select", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("update", "error")))
}

func TestDB_ObserveWithoutMetrics(t *testing.T) {
	d := Wrap(nil, nil, "test")
	assert.NotPanics(t, func() {
		d.observe("SELECT 1", time.Now(), nil)
	})
}
