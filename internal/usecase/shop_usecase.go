package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arcade-locator/internal/config"
	"github.com/arcade-locator/internal/domain"
	"github.com/arcade-locator/internal/domain/repository"
	"github.com/arcade-locator/internal/pkg/errors"
	"github.com/arcade-locator/internal/pkg/loctoken"
	"github.com/arcade-locator/internal/pkg/utils"
	"github.com/arcade-locator/internal/usecase/dto"
)

const (
	// NearbyCachePrefix - префикс ключей кеша поиска рядом с точкой
	NearbyCachePrefix = "shops:nearby:"

	shopCachePrefix = "shop:"

	defaultSearchLimit = 10
)

// ShopCacheKey - ключ кеша карточки магазина
func ShopCacheKey(id uuid.UUID) string {
	return shopCachePrefix + id.String()
}

type ShopUseCase struct {
	shopRepo   repository.ShopRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
	search     config.SearchConfig
	nearbyTTL  time.Duration
	shopTTL    time.Duration
}

func NewShopUseCase(
	shopRepo repository.ShopRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	search config.SearchConfig,
	cacheCfg config.CacheConfig,
) *ShopUseCase {
	return &ShopUseCase{
		shopRepo:   shopRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		logger:     logger,
		search:     search,
		nearbyTTL:  cacheCfg.NearbyCacheTTL,
		shopTTL:    cacheCfg.ShopCacheTTL,
	}
}

// Nearby ищет магазины в радиусе от точки. Радиус приводится к допустимому
// диапазону, результат отсортирован по расстоянию.
func (uc *ShopUseCase) Nearby(ctx context.Context, req dto.NearbyShopsRequest) (*dto.NearbyShopsResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	lat := utils.RoundCoordinate(req.Lat)
	lon := utils.RoundCoordinate(req.Lon)
	radius := utils.ClampRadius(req.RadiusKm, uc.search.MinRadiusKm, uc.search.MaxRadiusKm)
	limit := uc.normalizeLimit(req.Limit)

	token, err := loctoken.Encode(lat, lon, tokenRadius(radius), "")
	if err != nil {
		// координаты проверены выше
		uc.logger.Error("Failed to encode nearby token", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	cacheKey := fmt.Sprintf("%s%s:%g:%d", NearbyCachePrefix, token, radius, limit)
	if cached := uc.getCachedNearby(ctx, cacheKey); cached != nil {
		cached.RadiusClamped = radius != req.RadiusKm
		return cached, nil
	}

	shops, err := uc.shopRepo.GetNearby(ctx, lat, lon, radius, limit)
	if err != nil {
		uc.logger.Error("Failed to search nearby shops",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Float64("radius_km", radius),
			zap.Error(err))
		return nil, err
	}

	for _, shop := range shops {
		shop.DistanceKm = math.Round(utils.SphericalDistanceKm(lat, lon, shop.Lat, shop.Lon)*1000) / 1000
	}
	sort.SliceStable(shops, func(i, j int) bool {
		if shops[i].DistanceKm != shops[j].DistanceKm {
			return shops[i].DistanceKm < shops[j].DistanceKm
		}
		return shops[i].Name < shops[j].Name
	})
	if len(shops) > limit {
		shops = shops[:limit]
	}

	resp := &dto.NearbyShopsResponse{
		Center:        domain.Point{Lat: lat, Lon: lon},
		RadiusKm:      radius,
		RadiusClamped: radius != req.RadiusKm,
		Token:         shareToken(token, radius),
		Shops:         shops,
		Total:         len(shops),
	}

	uc.setCachedNearby(ctx, cacheKey, resp)

	return resp, nil
}

// NearToken ищет магазины вокруг точки из токена локации
func (uc *ShopUseCase) NearToken(ctx context.Context, token string, limit int) (*dto.NearbyShopsResponse, error) {
	loc, err := decodeToken(token)
	if err != nil {
		return nil, err
	}

	resp, err := uc.Nearby(ctx, dto.NearbyShopsRequest{
		Lat:      loc.Latitude,
		Lon:      loc.Longitude,
		RadiusKm: float64(loc.Radius),
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	resp.Label = loc.Name
	resp.Token = token
	return resp, nil
}

func (uc *ShopUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	key := ShopCacheKey(id)

	if data, err := uc.cacheRepo.Get(ctx, key); err == nil && data != nil {
		var shop domain.Shop
		if err := json.Unmarshal(data, &shop); err == nil {
			return &shop, nil
		}
		uc.logger.Warn("Failed to unmarshal cached shop", zap.String("key", key))
	}

	shop, err := uc.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(shop); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.shopTTL); err != nil {
			uc.logger.Warn("Failed to cache shop", zap.String("id", id.String()), zap.Error(err))
		}
	}

	return shop, nil
}

func (uc *ShopUseCase) Search(ctx context.Context, req dto.SearchShopsRequest) (*dto.SearchShopsResponse, error) {
	query := strings.TrimSpace(req.Query)
	if len([]rune(query)) < 2 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"query": "must contain at least 2 characters",
		})
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	shops, err := uc.shopRepo.SearchByName(ctx, query, limit)
	if err != nil {
		uc.logger.Error("Failed to search shops", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	return &dto.SearchShopsResponse{
		Shops: shops,
		Total: len(shops),
	}, nil
}

func (uc *ShopUseCase) Create(ctx context.Context, req dto.ShopRequest) (*domain.Shop, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	shop := shopFromRequest(uuid.New(), req)
	if err := uc.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}

	uc.logger.Info("Shop created", zap.String("id", shop.ID.String()), zap.String("name", shop.Name))
	uc.publishChange(ctx, shop, domain.ShopCreated)

	return shop, nil
}

func (uc *ShopUseCase) Update(ctx context.Context, id uuid.UUID, req dto.ShopRequest) (*domain.Shop, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	shop := shopFromRequest(id, req)
	if err := uc.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}

	uc.dropShopCache(ctx, id)
	uc.logger.Info("Shop updated", zap.String("id", id.String()))
	uc.publishChange(ctx, shop, domain.ShopUpdated)

	return shop, nil
}

func (uc *ShopUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	shop, err := uc.shopRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.shopRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.dropShopCache(ctx, id)
	uc.logger.Info("Shop deleted", zap.String("id", id.String()))
	uc.publishChange(ctx, shop, domain.ShopDeleted)

	return nil
}

func (uc *ShopUseCase) normalizeLimit(limit int) int {
	if limit <= 0 {
		return uc.search.DefaultLimit
	}
	if limit > uc.search.MaxLimit {
		return uc.search.MaxLimit
	}
	return limit
}

func (uc *ShopUseCase) getCachedNearby(ctx context.Context, key string) *dto.NearbyShopsResponse {
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var resp dto.NearbyShopsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("Failed to unmarshal cached nearby shops", zap.String("key", key), zap.Error(err))
		return nil
	}
	resp.Cached = true
	return &resp
}

func (uc *ShopUseCase) setCachedNearby(ctx context.Context, key string, resp *dto.NearbyShopsResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		uc.logger.Warn("Failed to marshal nearby shops", zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.nearbyTTL); err != nil {
		uc.logger.Warn("Failed to cache nearby shops", zap.String("key", key), zap.Error(err))
	}
}

func (uc *ShopUseCase) dropShopCache(ctx context.Context, id uuid.UUID) {
	if err := uc.cacheRepo.Delete(ctx, ShopCacheKey(id)); err != nil {
		uc.logger.Warn("Failed to drop shop cache", zap.String("id", id.String()), zap.Error(err))
	}
}

// publishChange публикует событие изменения. Ошибка не отменяет запись:
// кеш рядом с точкой в худшем случае доживёт до своего TTL.
func (uc *ShopUseCase) publishChange(ctx context.Context, shop *domain.Shop, action domain.ShopAction) {
	if uc.streamRepo == nil {
		return
	}
	event := domain.NewShopChangeEvent(shop, action)
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamShopChanged, event); err != nil {
		uc.logger.Error("Failed to publish shop change",
			zap.String("shop_id", shop.ID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func shopFromRequest(id uuid.UUID, req dto.ShopRequest) *domain.Shop {
	games := req.Games
	if games == nil {
		games = []string{}
	}
	return &domain.Shop{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Lat:          req.Lat,
		Lon:          req.Lon,
		Games:        games,
		OpeningHours: req.OpeningHours,
		Website:      req.Website,
	}
}

// shareToken - токен отдаётся клиенту, только если он описывает тот же поиск:
// токен хранит радиус целыми километрами
func shareToken(token string, radiusKm float64) string {
	if float64(tokenRadius(radiusKm)) != radiusKm {
		return ""
	}
	return token
}

// tokenRadius - радиус для токена: целые километры в пределах одного символа
func tokenRadius(radiusKm float64) int {
	r := int(math.Ceil(radiusKm))
	if r < loctoken.MinRadius {
		return loctoken.MinRadius
	}
	if r > loctoken.MaxRadius {
		return loctoken.MaxRadius
	}
	return r
}
