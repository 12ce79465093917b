package dto

// EncodeTokenRequest - запрос на кодирование локации в токен
type EncodeTokenRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Radius    int     `json:"radius" validate:"required,min=1,max=64"`
	Name      string  `json:"name" validate:"max=256"`
	// Encoding - dense (по умолчанию) или escaped
	Encoding string `json:"encoding,omitempty" validate:"omitempty,oneof=dense escaped"`
}

// NearbyShopsRequest - запрос на поиск магазинов рядом с точкой
type NearbyShopsRequest struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `json:"lon" validate:"min=-180,max=180"`
	RadiusKm float64 `json:"radius_km"` // вне допустимого диапазона приводится к границе
	Limit    int     `json:"limit" validate:"omitempty,min=1"`
}

// SearchShopsRequest - поиск магазинов по названию
type SearchShopsRequest struct {
	Query string `json:"query" validate:"required,min=2,max=100"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// ShopRequest - создание или обновление магазина
type ShopRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Address      string   `json:"address" validate:"max=500"`
	Lat          float64  `json:"lat" validate:"min=-90,max=90"`
	Lon          float64  `json:"lon" validate:"min=-180,max=180"`
	Games        []string `json:"games" validate:"max=100,dive,required,max=100"`
	OpeningHours *string  `json:"opening_hours,omitempty" validate:"omitempty,max=100"`
	Website      *string  `json:"website,omitempty" validate:"omitempty,url"`
}
