package dto

import "github.com/arcade-locator/internal/domain"

// LocationTokenResponse - токен и декодированные значения
type LocationTokenResponse struct {
	Token     string  `json:"token"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
	Name      string  `json:"name"`
	Encoding  string  `json:"encoding"`
}

// NearbyShopsResponse - магазины рядом с точкой, ближайшие первыми
type NearbyShopsResponse struct {
	Center        domain.Point         `json:"center"`
	RadiusKm      float64              `json:"radius_km"`
	RadiusClamped bool                 `json:"radius_clamped"`
	Label         string               `json:"label,omitempty"`
	// Token - токен этого поиска; пустой, если радиус не целое число км
	// из диапазона токена
	Token         string               `json:"token,omitempty"`
	Shops         []*domain.NearbyShop `json:"shops"`
	Total         int                  `json:"total"`

	Cached bool `json:"-"`
}

// SearchShopsResponse - результат поиска по названию
type SearchShopsResponse struct {
	Shops []*domain.Shop `json:"shops"`
	Total int            `json:"total"`
}
