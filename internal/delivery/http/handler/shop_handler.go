package handler

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arcade-locator/internal/domain"
	"github.com/arcade-locator/internal/pkg/errors"
	"github.com/arcade-locator/internal/pkg/utils"
	"github.com/arcade-locator/internal/pkg/validator"
	"github.com/arcade-locator/internal/usecase/dto"
)

const defaultRadiusKm = 5

// ShopService - операции над магазинами
type ShopService interface {
	Nearby(ctx context.Context, req dto.NearbyShopsRequest) (*dto.NearbyShopsResponse, error)
	NearToken(ctx context.Context, token string, limit int) (*dto.NearbyShopsResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
	Search(ctx context.Context, req dto.SearchShopsRequest) (*dto.SearchShopsResponse, error)
	Create(ctx context.Context, req dto.ShopRequest) (*domain.Shop, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ShopRequest) (*domain.Shop, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShopHandler - обработчик запросов по магазинам
type ShopHandler struct {
	shopUC ShopService
	logger *zap.Logger
}

func NewShopHandler(shopUC ShopService, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{
		shopUC: shopUC,
		logger: logger,
	}
}

// Nearby godoc
// @Summary Магазины рядом с точкой
// @Description Возвращает магазины в радиусе от точки, ближайшие первыми. Радиус вне 1..64 км приводится к границе.
// @Tags Shops
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param radius query number false "Радиус в км" default(5)
// @Param limit query int false "Максимальное количество результатов" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyShopsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/shops/nearby [get]
func (h *ShopHandler) Nearby(c *fiber.Ctx) error {
	start := time.Now()

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": c.Query("lat"),
			"lon": c.Query("lon"),
		}))
	}

	// вне диапазона радиус приводится к границе, но не-число это ошибка клиента
	radius := float64(defaultRadiusKm)
	if raw := c.Query("radius"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return utils.SendError(c, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
				"radius": raw,
			}))
		}
		radius = v
	}

	req := dto.NearbyShopsRequest{
		Lat:      lat,
		Lon:      lon,
		RadiusKm: radius,
		Limit:    c.QueryInt("limit", 0),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.shopUC.Nearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return h.sendNearby(c, result, start)
}

// NearToken godoc
// @Summary Магазины вокруг токена локации
// @Description Декодирует токен и ищет магазины вокруг его точки в радиусе токена
// @Tags Shops
// @Produce json
// @Param token path string true "Токен локации"
// @Param limit query int false "Максимальное количество результатов" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyShopsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/shops/near/{token} [get]
func (h *ShopHandler) NearToken(c *fiber.Ctx) error {
	start := time.Now()

	result, err := h.shopUC.NearToken(c.Context(), rawParam(c, "token"), c.QueryInt("limit", 0))
	if err != nil {
		return utils.SendError(c, err)
	}

	return h.sendNearby(c, result, start)
}

// Search godoc
// @Summary Поиск магазинов по названию
// @Tags Shops
// @Produce json
// @Param q query string true "Поисковый запрос (минимум 2 символа)"
// @Param limit query int false "Максимальное количество результатов" default(10)
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchShopsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/shops/search [get]
func (h *ShopHandler) Search(c *fiber.Ctx) error {
	req := dto.SearchShopsRequest{
		Query: c.Query("q"),
		Limit: c.QueryInt("limit", 10),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.shopUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}

// GetByID godoc
// @Summary Магазин по ID
// @Tags Shops
// @Produce json
// @Param id path string true "UUID магазина"
// @Success 200 {object} utils.SuccessResponse{data=domain.Shop}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/shops/{id} [get]
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidShopID)
	}

	shop, err := h.shopUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, shop, nil)
}

// Create godoc
// @Summary Добавление магазина
// @Tags Shops
// @Accept json
// @Produce json
// @Param request body dto.ShopRequest true "Магазин"
// @Success 201 {object} utils.SuccessResponse{data=domain.Shop}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	req, err := parseShopRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	shop, err := h.shopUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, shop)
}

// Update godoc
// @Summary Обновление магазина
// @Tags Shops
// @Accept json
// @Produce json
// @Param id path string true "UUID магазина"
// @Param request body dto.ShopRequest true "Магазин"
// @Success 200 {object} utils.SuccessResponse{data=domain.Shop}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/shops/{id} [put]
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidShopID)
	}

	req, err := parseShopRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	shop, err := h.shopUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, shop, nil)
}

// Delete godoc
// @Summary Удаление магазина
// @Tags Shops
// @Param id path string true "UUID магазина"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/shops/{id} [delete]
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidShopID)
	}

	if err := h.shopUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ShopHandler) sendNearby(c *fiber.Ctx, result *dto.NearbyShopsResponse, start time.Time) error {
	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Total,
		Cached:   result.Cached,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

func parseShopRequest(c *fiber.Ctx) (dto.ShopRequest, error) {
	var req dto.ShopRequest
	if err := c.BodyParser(&req); err != nil {
		return req, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "invalid JSON",
		})
	}
	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
