package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/arcade-locator/internal/domain"
	"github.com/arcade-locator/internal/domain/repository"
	pkgerrors "github.com/arcade-locator/internal/pkg/errors"
)

const (
	shopColumns = `id, name, address, lat, lon, games, opening_hours, website, created_at, updated_at`

	maxNearbyLimit = 500
)

type shopRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

type shopRow struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	Address      string         `db:"address"`
	Lat          float64        `db:"lat"`
	Lon          float64        `db:"lon"`
	Games        pq.StringArray `db:"games"`
	OpeningHours sql.NullString `db:"opening_hours"`
	Website      sql.NullString `db:"website"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type shopDistanceRow struct {
	shopRow
	DistanceKm float64 `db:"distance_km"`
}

func (r shopRow) toDomain() *domain.Shop {
	games := []string(r.Games)
	if games == nil {
		games = []string{}
	}
	return &domain.Shop{
		ID:           r.ID,
		Name:         r.Name,
		Address:      r.Address,
		Lat:          r.Lat,
		Lon:          r.Lon,
		Games:        games,
		OpeningHours: nullStringPtr(r.OpeningHours),
		Website:      nullStringPtr(r.Website),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// NewShopRepository создает репозиторий магазинов
func NewShopRepository(db *DB) repository.ShopRepository {
	return &shopRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *shopRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = $1`

	var row shopRow
	err := r.db.QueryRowxContext(ctx, query, id).StructScan(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrShopNotFound
	}
	if err != nil {
		r.logger.Error("failed to get shop", zap.String("id", id.String()), zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *shopRepository) GetNearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*domain.NearbyShop, error) {
	if limit <= 0 || limit > maxNearbyLimit {
		limit = maxNearbyLimit
	}

	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT ` + shopColumns + `,
			ST_Distance(shops.location, point.geom) / 1000.0 AS distance_km
		FROM shops, point
		WHERE ST_DWithin(shops.location, point.geom, $3)
		ORDER BY distance_km
		LIMIT $4
	`

	rows, err := r.db.QueryxContext(ctx, query, lon, lat, radiusKm*1000, limit)
	if err != nil {
		r.logger.Error("failed to query nearby shops",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Float64("radius_km", radiusKm),
			zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError
	}
	defer rows.Close()

	result, err := scanNearby(rows)
	if err != nil {
		r.logger.Error("failed to read nearby shops", zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError
	}

	return result, nil
}

// structRows - часть *sqlx.Rows, нужная для чтения выборки
type structRows interface {
	Next() bool
	StructScan(dest interface{}) error
	Err() error
}

// scanNearby читает выборку целиком: битая строка прерывает чтение,
// а не выпадает из результата молча
func scanNearby(rows structRows) ([]*domain.NearbyShop, error) {
	result := make([]*domain.NearbyShop, 0)
	for rows.Next() {
		var row shopDistanceRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan shop row: %w", err)
		}
		result = append(result, &domain.NearbyShop{
			Shop:       *row.shopRow.toDomain(),
			DistanceKm: row.DistanceKm,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nearby shops: %w", err)
	}
	return result, nil
}

func (r *shopRepository) SearchByName(ctx context.Context, query string, limit int) ([]*domain.Shop, error) {
	if limit <= 0 || limit > maxNearbyLimit {
		limit = maxNearbyLimit
	}

	sqlQuery := `SELECT ` + shopColumns + ` FROM shops
		WHERE lower(name) LIKE '%' || lower($1) || '%' ESCAPE '\'
		ORDER BY lower(name) = lower($3) DESC, name
		LIMIT $2`

	var rows []shopRow
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, escapeLike(query), limit, query); err != nil {
		r.logger.Error("failed to search shops", zap.String("query", query), zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError
	}

	result := make([]*domain.Shop, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

func (r *shopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	query := `
		INSERT INTO shops (id, name, address, lat, lon, location, games, opening_hours, website)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($5, $4), 4326)::geography, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		shop.ID, shop.Name, shop.Address, shop.Lat, shop.Lon,
		gamesArray(shop.Games), shop.OpeningHours, shop.Website,
	).Scan(&shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create shop", zap.String("id", shop.ID.String()), zap.Error(err))
		return pkgerrors.ErrDatabaseError
	}

	return nil
}

func (r *shopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	query := `
		UPDATE shops SET
			name = $2,
			address = $3,
			lat = $4,
			lon = $5,
			location = ST_SetSRID(ST_MakePoint($5, $4), 4326)::geography,
			games = $6,
			opening_hours = $7,
			website = $8,
			updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		shop.ID, shop.Name, shop.Address, shop.Lat, shop.Lon,
		gamesArray(shop.Games), shop.OpeningHours, shop.Website,
	).Scan(&shop.CreatedAt, &shop.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pkgerrors.ErrShopNotFound
	}
	if err != nil {
		r.logger.Error("failed to update shop", zap.String("id", shop.ID.String()), zap.Error(err))
		return pkgerrors.ErrDatabaseError
	}

	return nil
}

func (r *shopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete shop", zap.String("id", id.String()), zap.Error(err))
		return pkgerrors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("failed to read affected rows", zap.Error(err))
		return pkgerrors.ErrDatabaseError
	}
	if affected == 0 {
		return pkgerrors.ErrShopNotFound
	}

	return nil
}

// gamesArray - games NOT NULL, nil слайс пишем как пустой массив
func gamesArray(games []string) interface{} {
	if games == nil {
		games = []string{}
	}
	return pq.Array(games)
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE в пользовательском запросе
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
