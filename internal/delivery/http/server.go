package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/arcade-locator/internal/config"
	"github.com/arcade-locator/internal/delivery/http/handler"
	"github.com/arcade-locator/internal/delivery/http/middleware"
	apperrors "github.com/arcade-locator/internal/pkg/errors"
	"github.com/arcade-locator/internal/pkg/utils"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck - проверка зависимости для /health
type HealthCheck func(ctx context.Context) error

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	tokenHandler *handler.TokenHandler
	shopHandler  *handler.ShopHandler
	healthChecks map[string]HealthCheck
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenHandler *handler.TokenHandler,
	shopHandler *handler.ShopHandler,
	healthChecks map[string]HealthCheck,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Arcade Locator",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:          app,
		config:       cfg,
		logger:       logger,
		tokenHandler: tokenHandler,
		shopHandler:  shopHandler,
		healthChecks: healthChecks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Location tokens
	api.Post("/location-tokens", s.tokenHandler.Encode)
	api.Get("/location-tokens/:token", s.tokenHandler.Decode)

	// Shops: статические пути раньше /:id
	shops := api.Group("/shops")
	shops.Get("/nearby", s.shopHandler.Nearby)
	shops.Get("/near/:token", s.shopHandler.NearToken)
	shops.Get("/search", s.shopHandler.Search)
	shops.Get("/:id", s.shopHandler.GetByID)
	shops.Post("/", s.shopHandler.Create)
	shops.Put("/:id", s.shopHandler.Update)
	shops.Delete("/:id", s.shopHandler.Delete)
}

// health godoc
// @Summary Проверка состояния сервиса
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	checks := make(fiber.Map, len(s.healthChecks))
	for name, check := range s.healthChecks {
		if err := check(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = "down"
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные в хендлерах (404 роутера, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		message := err.Error()
		if code >= fiber.StatusInternalServerError {
			message = apperrors.ErrInternalServer.Message
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: apperrors.New(errorCode(code), message, code),
		})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	default:
		if status >= fiber.StatusInternalServerError {
			return apperrors.ErrInternalServer.Code
		}
		return apperrors.ErrInvalidRequest.Code
	}
}
