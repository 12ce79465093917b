package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/arcade-locator/internal/domain/repository"
	"github.com/arcade-locator/internal/repository/postgres"
)

// NewShopRepositoryForTest creates a shop repository with test database and logger
func NewShopRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ShopRepository {
	return postgres.NewShopRepository(postgres.NewDBForTest(db, logger))
}
