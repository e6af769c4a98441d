package events

import (
	"context"
	"time"

	"github.com/m04kA/servihogar-turnos/internal/domain"
)

// Emitter публикует события бронирований без влияния на результат операции
// Ошибки публикации только логируются
type Emitter struct {
	sink   Sink
	logger Logger
	now    func() time.Time
}

// NewEmitter создает эмиттер поверх издателя
func NewEmitter(sink Sink, logger Logger) *Emitter {
	return &Emitter{sink: sink, logger: logger, now: time.Now}
}

// Emit публикует событие изменения бронирования
func (e *Emitter) Emit(ctx context.Context, t Type, turno *domain.Turno, actorID *int64) {
	e.send(ctx, NewTurnoEvent(t, turno, actorID, e.now()))
}

// EmitRated публикует событие оценки бронирования
func (e *Emitter) EmitRated(ctx context.Context, turno *domain.Turno, clientID int64, score int) {
	e.send(ctx, NewTurnoEvent(TurnoRated, turno, &clientID, e.now()).WithScore(score))
}

func (e *Emitter) send(ctx context.Context, ev Event) {
	if e == nil || e.sink == nil {
		return
	}
	if err := e.sink.Publish(ctx, ev); err != nil {
		e.logger.Warn("events: failed to publish %s for turno=%d: %v", ev.Type, ev.TurnoID, err)
	}
}
