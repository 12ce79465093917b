package domain

import (
	"time"

	"github.com/google/uuid"
)

// StreamShopChanged - стрим изменений магазинов
const StreamShopChanged = "stream:shop:changed"

// ShopAction - тип изменения магазина
type ShopAction string

const (
	ShopCreated ShopAction = "created"
	ShopUpdated ShopAction = "updated"
	ShopDeleted ShopAction = "deleted"
)

// Valid проверяет, что действие известно
func (a ShopAction) Valid() bool {
	switch a {
	case ShopCreated, ShopUpdated, ShopDeleted:
		return true
	default:
		return false
	}
}

// ShopChangeEvent - событие изменения магазина, публикуется при записи
type ShopChangeEvent struct {
	EventID    uuid.UUID  `json:"event_id"`
	ShopID     uuid.UUID  `json:"shop_id"`
	Action     ShopAction `json:"action"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewShopChangeEvent создаёт событие для магазина
func NewShopChangeEvent(shop *Shop, action ShopAction) ShopChangeEvent {
	return ShopChangeEvent{
		EventID:    uuid.New(),
		ShopID:     shop.ID,
		Action:     action,
		Lat:        shop.Lat,
		Lon:        shop.Lon,
		OccurredAt: time.Now().UTC(),
	}
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
