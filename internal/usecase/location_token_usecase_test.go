package usecase_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgerrors "github.com/arcade-locator/internal/pkg/errors"
	"github.com/arcade-locator/internal/usecase"
	"github.com/arcade-locator/internal/usecase/dto"
)

func TestLocationTokenUseCase_Encode(t *testing.T) {
	uc := usecase.NewLocationTokenUseCase(zap.NewNop())

	t.Run("dense by default", func(t *testing.T) {
		resp, err := uc.Encode(dto.EncodeTokenRequest{
			Latitude:  35.6595,
			Longitude: 139.7005,
			Radius:    3,
			Name:      "渋谷",
		})
		require.NoError(t, err)

		assert.Equal(t, "dense", resp.Encoding)
		assert.Equal(t, "渋谷", resp.Name)
		assert.Equal(t, 3, resp.Radius)
		assert.InDelta(t, 35.6595, resp.Latitude, 1e-9)
		assert.False(t, strings.Contains(resp.Token[11:], "!"))
	})

	t.Run("escaped on request", func(t *testing.T) {
		resp, err := uc.Encode(dto.EncodeTokenRequest{
			Latitude:  35.6595,
			Longitude: 139.7005,
			Radius:    3,
			Name:      "Shibuya Center",
			Encoding:  "escaped",
		})
		require.NoError(t, err)

		assert.Equal(t, "escaped", resp.Encoding)
		assert.Equal(t, "Shibuya Center", resp.Name)
		assert.Equal(t, "!Shibuya%20Center", resp.Token[11:])
	})

	t.Run("rounds to six decimals", func(t *testing.T) {
		resp, err := uc.Encode(dto.EncodeTokenRequest{Latitude: 0.1234567, Longitude: 0, Radius: 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.123457, resp.Latitude, 1e-9)
	})

	t.Run("radius out of range", func(t *testing.T) {
		_, err := uc.Encode(dto.EncodeTokenRequest{Latitude: 0, Longitude: 0, Radius: 65})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidRadius)
	})

	t.Run("coordinates out of range", func(t *testing.T) {
		_, err := uc.Encode(dto.EncodeTokenRequest{Latitude: 90.5, Longitude: 0, Radius: 1})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidCoordinates)
	})
}

func TestLocationTokenUseCase_Decode(t *testing.T) {
	uc := usecase.NewLocationTokenUseCase(zap.NewNop())

	encoded, err := uc.Encode(dto.EncodeTokenRequest{Latitude: -33.8688, Longitude: 151.2093, Radius: 10, Name: "Sydney"})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		resp, err := uc.Decode(encoded.Token)
		require.NoError(t, err)
		assert.Equal(t, encoded, resp)
	})

	t.Run("invalid token carries reason", func(t *testing.T) {
		_, err := uc.Decode(encoded.Token[:7])
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidLocationToken)

		var appErr *pkgerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.NotEmpty(t, appErr.Details["reason"])
	})
}
