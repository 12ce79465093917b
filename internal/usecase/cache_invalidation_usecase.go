package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arcade-locator/internal/domain"
	"github.com/arcade-locator/internal/domain/repository"
)

// CacheInvalidationUseCase сбрасывает кеш после изменения магазина
type CacheInvalidationUseCase struct {
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
}

func NewCacheInvalidationUseCase(cacheRepo repository.CacheRepository, logger *zap.Logger) *CacheInvalidationUseCase {
	return &CacheInvalidationUseCase{
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// Handle удаляет карточку магазина и все выборки рядом с точкой.
// Ключи выборок не привязаны к магазину, поэтому сбрасываются целиком.
func (uc *CacheInvalidationUseCase) Handle(ctx context.Context, event domain.ShopChangeEvent) error {
	if !event.Action.Valid() {
		return fmt.Errorf("unknown shop action %q", event.Action)
	}

	if err := uc.cacheRepo.Delete(ctx, ShopCacheKey(event.ShopID)); err != nil {
		return fmt.Errorf("failed to drop shop cache: %w", err)
	}

	deleted, err := uc.cacheRepo.DeleteByPrefix(ctx, NearbyCachePrefix)
	if err != nil {
		return fmt.Errorf("failed to drop nearby cache: %w", err)
	}

	uc.logger.Info("Shop cache invalidated",
		zap.String("shop_id", event.ShopID.String()),
		zap.String("action", string(event.Action)),
		zap.Int64("nearby_keys", deleted))

	return nil
}
