package events

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel часть amqp.Channel, используемая издателем
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Sink получатель событий: Publisher или Noop
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
