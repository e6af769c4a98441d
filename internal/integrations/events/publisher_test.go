package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/ptr"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testTurno() *domain.Turno {
	return &domain.Turno{
		ID:             15,
		ClientID:       3,
		ProfessionalID: 7,
		ServiceID:      10,
		Date:           time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:           "10:00",
		Status:         domain.StatusConfirmed,
		FinalPrice:     decimal.RequireFromString("800.00"),
	}
}

func TestPublish_RoutingKeyAndBody(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "servihogar.turnos"}

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := NewTurnoEvent(TurnoConfirmed, testTurno(), ptr.Ptr(int64(7)), at)

	require.NoError(t, p.Publish(context.Background(), e))

	assert.Equal(t, "servihogar.turnos", ch.exchange)
	assert.Equal(t, "turno.confirmed", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, e.ID, ch.msg.MessageId)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, "2025-06-02", decoded["date"])
	assert.Equal(t, "10:00", decoded["time"])
	assert.Equal(t, "confirmed", decoded["status"])
	assert.Equal(t, "800", decoded["final_price"])
	assert.NotContains(t, decoded, "score")

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublish_ChannelError(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}

	err := p.Publish(context.Background(), NewTurnoEvent(TurnoCreated, testTurno(), nil, time.Now()))
	assert.Error(t, err)
}

func TestEventIDsAreUnique(t *testing.T) {
	a := NewTurnoEvent(TurnoCreated, testTurno(), nil, time.Now())
	b := NewTurnoEvent(TurnoCreated, testTurno(), nil, time.Now())
	assert.NotEqual(t, a.ID, b.ID)

	rated := a.WithScore(5)
	require.NotNil(t, rated.Score)
	assert.Equal(t, 5, *rated.Score)
	assert.Nil(t, a.Score)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), Event{}))
	assert.NoError(t, Noop{}.Close())
}
