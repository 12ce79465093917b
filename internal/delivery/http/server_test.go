package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arcade-locator/internal/config"
	httpDelivery "github.com/arcade-locator/internal/delivery/http"
	"github.com/arcade-locator/internal/delivery/http/handler"
	"github.com/arcade-locator/internal/domain"
	pkgerrors "github.com/arcade-locator/internal/pkg/errors"
	"github.com/arcade-locator/internal/usecase"
	"github.com/arcade-locator/internal/usecase/dto"
)

// stubShops отвечает фиксированными данными и запоминает последний токен
type stubShops struct {
	lastToken string
}

func (s *stubShops) Nearby(ctx context.Context, req dto.NearbyShopsRequest) (*dto.NearbyShopsResponse, error) {
	return &dto.NearbyShopsResponse{Center: domain.Point{Lat: req.Lat, Lon: req.Lon}, Shops: []*domain.NearbyShop{}}, nil
}

func (s *stubShops) NearToken(ctx context.Context, token string, limit int) (*dto.NearbyShopsResponse, error) {
	s.lastToken = token
	return &dto.NearbyShopsResponse{Token: token, Shops: []*domain.NearbyShop{}}, nil
}

func (s *stubShops) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	return nil, pkgerrors.ErrShopNotFound
}

func (s *stubShops) Search(ctx context.Context, req dto.SearchShopsRequest) (*dto.SearchShopsResponse, error) {
	return &dto.SearchShopsResponse{Shops: []*domain.Shop{}}, nil
}

func (s *stubShops) Create(ctx context.Context, req dto.ShopRequest) (*domain.Shop, error) {
	return &domain.Shop{ID: uuid.New(), Name: req.Name}, nil
}

func (s *stubShops) Update(ctx context.Context, id uuid.UUID, req dto.ShopRequest) (*domain.Shop, error) {
	return &domain.Shop{ID: id, Name: req.Name}, nil
}

func (s *stubShops) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newTestServer(checks map[string]httpDelivery.HealthCheck) (*httpDelivery.Server, *stubShops) {
	cfg := &config.Config{Server: config.ServerConfig{CORSOrigins: "*"}}
	shops := &stubShops{}
	log := zap.NewNop()

	srv := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewTokenHandler(usecase.NewLocationTokenUseCase(log), log),
		handler.NewShopHandler(shops, log),
		checks,
	)
	return srv, shops
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestServer_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv, _ := newTestServer(map[string]httpDelivery.HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})

		resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("degraded", func(t *testing.T) {
		srv, _ := newTestServer(map[string]httpDelivery.HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})

		resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		body := decodeBody(t, resp)
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "up", checks["postgres"])
		assert.Equal(t, "down", checks["redis"])
	})
}

func TestServer_Routes(t *testing.T) {
	srv, shops := newTestServer(nil)
	app := srv.App()

	t.Run("static shop routes win over :id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/shops/search?q=taito", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/shops/nearby?lat=35&lon=139", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("near token keeps percent escapes", func(t *testing.T) {
		token := "FXUqAFXUqAC!Shibuya%20Center"
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/shops/near/"+token, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, token, shops.lastToken)
	})

	t.Run("shop not found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+uuid.NewString(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "SHOP_NOT_FOUND", body["error"].(map[string]any)["code"])
	})

	t.Run("unknown route uses error envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"])
	})

	t.Run("short token rejected", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/location-tokens/short", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
