package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shop представляет зал игровых автоматов
type Shop struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Address      string    `json:"address" db:"address"`
	Lat          float64   `json:"lat" db:"lat"`
	Lon          float64   `json:"lon" db:"lon"`
	Games        []string  `json:"games" db:"games"`
	OpeningHours *string   `json:"opening_hours,omitempty" db:"opening_hours"`
	Website      *string   `json:"website,omitempty" db:"website"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NearbyShop - магазин с расстоянием до точки поиска
type NearbyShop struct {
	Shop
	DistanceKm float64 `json:"distance_km"`
}
