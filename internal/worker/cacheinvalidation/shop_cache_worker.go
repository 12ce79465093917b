package cacheinvalidation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/arcade-locator/internal/domain"
	"github.com/arcade-locator/internal/domain/repository"
	"github.com/arcade-locator/internal/worker"
)

const (
	maxBatchSize    = 20 // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond
	errorSleep      = time.Second
	retryBackoff    = 50 * time.Millisecond

	// сообщения, не подтверждённые дольше pendingMinIdle, считаются брошенными
	pendingMinIdle  = 30 * time.Second
	reclaimInterval = time.Minute
)

// Invalidator сбрасывает кеш по событию изменения магазина
type Invalidator interface {
	Handle(ctx context.Context, event domain.ShopChangeEvent) error
}

// ShopCacheWorker читает stream:shop:changed и сбрасывает кеш магазинов
type ShopCacheWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	invalidator  Invalidator
	consumerName string
	maxRetries   int
}

func NewShopCacheWorker(
	streamRepo repository.StreamRepository,
	invalidator Invalidator,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *ShopCacheWorker {
	hostname, _ := os.Hostname()
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &ShopCacheWorker{
		BaseWorker:   worker.NewBaseWorker("shop-cache-invalidation", consumerGroup, logger),
		streamRepo:   streamRepo,
		invalidator:  invalidator,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
	}
}

func (w *ShopCacheWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ShopCacheWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamShopChanged, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	var lastReclaim time.Time
	for {
		if w.IsStopped() {
			logger.Info("Worker stopped")
			return nil
		}
		if err := ctx.Err(); err != nil {
			logger.Info("Context cancelled")
			return err
		}

		// ">" отдаёт только новые сообщения, брошенные забираем отдельно
		if time.Since(lastReclaim) >= reclaimInterval {
			if err := w.reclaimPending(ctx); err != nil {
				logger.Error("Failed to reclaim pending messages", zap.Error(err))
			}
			lastReclaim = time.Now()
		}

		processed, err := w.processBatch(ctx)
		pause := time.Duration(0)
		switch {
		case err != nil:
			logger.Error("Failed to process batch", zap.Error(err))
			pause = errorSleep
		case processed == 0:
			pause = emptyQueueSleep
		}

		if pause > 0 {
			// остановку проверит начало цикла
			w.Sleep(ctx, pause)
		}
	}
}

// processBatch читает и обрабатывает batch, возвращает число прочитанных сообщений
func (w *ShopCacheWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamShopChanged, w.ConsumerGroup(), w.consumerName, maxBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))
	w.handleMessages(ctx, messages)

	return len(messages), nil
}

// reclaimPending обходит pending-список группы и обрабатывает зависшие сообщения
func (w *ShopCacheWorker) reclaimPending(ctx context.Context) error {
	start := "0-0"
	for {
		messages, next, err := w.streamRepo.ClaimPending(ctx, domain.StreamShopChanged, w.ConsumerGroup(),
			w.consumerName, pendingMinIdle, start, maxBatchSize)
		if err != nil {
			return fmt.Errorf("failed to claim pending messages: %w", err)
		}
		if len(messages) > 0 {
			w.Logger().Info("Processing reclaimed messages", zap.Int("message_count", len(messages)))
			w.handleMessages(ctx, messages)
		}

		if next == "" || next == "0-0" || ctx.Err() != nil || w.IsStopped() {
			return nil
		}
		start = next
	}
}

// handleMessages обрабатывает сообщения и подтверждает обработанные.
// При остановке необработанный хвост остаётся в pending до reclaimPending.
func (w *ShopCacheWorker) handleMessages(ctx context.Context, messages []domain.StreamMessage) {
	logger := w.Logger()

	ackIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		if ctx.Err() != nil || w.IsStopped() {
			break
		}

		event, err := parseMessage(msg)
		if err != nil {
			// битое сообщение не застревает в pending
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		if err := w.handleWithRetry(ctx, event); err != nil {
			if ctx.Err() != nil || w.IsStopped() {
				break
			}
			// после исчерпания попыток кеш доживёт до своего TTL
			logger.Error("Dropping shop change event after retries",
				zap.String("message_id", msg.ID),
				zap.String("shop_id", event.ShopID.String()),
				zap.Int("attempts", w.maxRetries),
				zap.Error(err))
		}
		ackIDs = append(ackIDs, msg.ID)
	}

	if len(ackIDs) == 0 {
		return
	}
	// подтверждаем обработанное даже при отмене ctx
	if err := w.streamRepo.AckMessage(context.WithoutCancel(ctx), domain.StreamShopChanged, w.ConsumerGroup(), ackIDs...); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}
}

func (w *ShopCacheWorker) handleWithRetry(ctx context.Context, event domain.ShopChangeEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.invalidator.Handle(ctx, event); err == nil {
			return nil
		}

		w.Logger().Warn("Cache invalidation failed",
			zap.String("shop_id", event.ShopID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < w.maxRetries && !w.Sleep(ctx, retryBackoff*time.Duration(attempt)) {
			return err
		}
	}
	return err
}

func parseMessage(msg domain.StreamMessage) (domain.ShopChangeEvent, error) {
	var event domain.ShopChangeEvent
	if msg.Data == "" {
		return event, fmt.Errorf("missing 'data' field")
	}
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if !event.Action.Valid() {
		return event, fmt.Errorf("unknown action %q", event.Action)
	}
	return event, nil
}
