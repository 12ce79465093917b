package repository

import (
	"context"
	"time"

	"github.com/arcade-locator/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// ConsumeBatch читает до count сообщений без блокировки
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error)

	// ClaimPending забирает себе сообщения группы, не подтверждённые дольше minIdle.
	// Возвращает курсор для следующего вызова, "0-0" - обход закончен.
	ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, start string, count int64) ([]domain.StreamMessage, string, error)

	// AckMessage подтверждает обработку сообщений
	AckMessage(ctx context.Context, stream, group string, messageIDs ...string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
