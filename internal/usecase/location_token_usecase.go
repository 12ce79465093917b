package usecase

import (
	"errors"
	"net/url"

	"go.uber.org/zap"

	pkgerrors "github.com/arcade-locator/internal/pkg/errors"
	"github.com/arcade-locator/internal/pkg/loctoken"
	"github.com/arcade-locator/internal/usecase/dto"
)

const encodingEscaped = "escaped"

// LocationTokenUseCase - кодирование и декодирование токенов локации
type LocationTokenUseCase struct {
	logger *zap.Logger
}

func NewLocationTokenUseCase(logger *zap.Logger) *LocationTokenUseCase {
	return &LocationTokenUseCase{logger: logger}
}

// Encode упаковывает локацию в токен. По умолчанию подпись кодируется плотно,
// encoding=escaped даёт percent-encoding с маркером "!".
func (uc *LocationTokenUseCase) Encode(req dto.EncodeTokenRequest) (*dto.LocationTokenResponse, error) {
	var (
		token string
		err   error
	)
	if req.Encoding == encodingEscaped {
		token, err = loctoken.EncodeEscaped(req.Latitude, req.Longitude, req.Radius, url.PathEscape(req.Name))
	} else {
		token, err = loctoken.Encode(req.Latitude, req.Longitude, req.Radius, req.Name)
	}
	if err != nil {
		return nil, mapEncodeError(err)
	}

	// ответ отражает значения после округления до 6 знаков
	return uc.Decode(token)
}

// Decode разбирает токен
func (uc *LocationTokenUseCase) Decode(token string) (*dto.LocationTokenResponse, error) {
	loc, err := decodeToken(token)
	if err != nil {
		uc.logger.Debug("Rejected location token", zap.String("token", token), zap.Error(err))
		return nil, err
	}

	return &dto.LocationTokenResponse{
		Token:     token,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Radius:    loc.Radius,
		Name:      loc.Name,
		Encoding:  loc.Encoding.String(),
	}, nil
}

// decodeToken переводит ошибку кодека в ErrInvalidLocationToken с причиной
func decodeToken(token string) (loctoken.Location, error) {
	loc, err := loctoken.Decode(token)
	if err != nil {
		var invalid *loctoken.InvalidTokenError
		if errors.As(err, &invalid) {
			return loc, pkgerrors.ErrInvalidLocationToken.WithDetails(map[string]interface{}{
				"reason": invalid.Reason,
			})
		}
		return loc, pkgerrors.ErrInvalidLocationToken
	}
	return loc, nil
}

func mapEncodeError(err error) error {
	switch {
	case errors.Is(err, loctoken.ErrCoordinatesOutOfRange):
		return pkgerrors.ErrInvalidCoordinates
	case errors.Is(err, loctoken.ErrRadiusOutOfRange):
		return pkgerrors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"min": loctoken.MinRadius,
			"max": loctoken.MaxRadius,
		})
	default:
		return pkgerrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
}
