package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/arcade-locator/internal/pkg/errors"
	"github.com/arcade-locator/internal/pkg/utils"
	"github.com/arcade-locator/internal/pkg/validator"
	"github.com/arcade-locator/internal/usecase/dto"
)

// TokenService - кодек токенов локации
type TokenService interface {
	Encode(req dto.EncodeTokenRequest) (*dto.LocationTokenResponse, error)
	Decode(token string) (*dto.LocationTokenResponse, error)
}

// TokenHandler - обработчик токенов локации
type TokenHandler struct {
	tokenUC TokenService
	logger  *zap.Logger
}

func NewTokenHandler(tokenUC TokenService, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUC: tokenUC,
		logger:  logger,
	}
}

// Encode godoc
// @Summary Кодирование локации в токен
// @Description Упаковывает координаты, радиус и подпись в компактный URL-safe токен. Координаты округляются до 6 знаков.
// @Tags Location tokens
// @Accept json
// @Produce json
// @Param request body dto.EncodeTokenRequest true "Локация"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationTokenResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/location-tokens [post]
func (h *TokenHandler) Encode(c *fiber.Ctx) error {
	var req dto.EncodeTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "invalid JSON",
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.tokenUC.Encode(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Decode godoc
// @Summary Декодирование токена локации
// @Tags Location tokens
// @Produce json
// @Param token path string true "Токен локации"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationTokenResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/location-tokens/{token} [get]
func (h *TokenHandler) Decode(c *fiber.Ctx) error {
	result, err := h.tokenUC.Decode(rawParam(c, "token"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// rawParam возвращает параметр пути без percent-декодирования:
// экранированная подпись токена должна дойти до кодека как есть
func rawParam(c *fiber.Ctx, key string) string {
	return strings.Clone(c.Params(key))
}
