package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/arcade-locator/internal/domain"
)

// ShopRepository определяет методы для работы с магазинами
type ShopRepository interface {
	// GetByID возвращает магазин по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error)

	// GetNearby возвращает магазины в радиусе от точки, ближайшие первыми
	GetNearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*domain.NearbyShop, error)

	// SearchByName выполняет поиск по подстроке названия
	SearchByName(ctx context.Context, query string, limit int) ([]*domain.Shop, error)

	Create(ctx context.Context, shop *domain.Shop) error
	Update(ctx context.Context, shop *domain.Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
}
