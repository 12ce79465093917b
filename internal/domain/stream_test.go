package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopAction_Valid(t *testing.T) {
	tests := []struct {
		action   ShopAction
		expected bool
	}{
		{action: ShopCreated, expected: true},
		{action: ShopUpdated, expected: true},
		{action: ShopDeleted, expected: true},
		{action: "renamed", expected: false},
		{action: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.Valid())
		})
	}
}

func TestNewShopChangeEvent(t *testing.T) {
	shop := &Shop{ID: uuid.New(), Name: "Taito Station", Lat: 35.659, Lon: 139.700}

	event := NewShopChangeEvent(shop, ShopUpdated)

	assert.NotEqual(t, uuid.Nil, event.EventID)
	assert.Equal(t, shop.ID, event.ShopID)
	assert.Equal(t, ShopUpdated, event.Action)
	assert.Equal(t, shop.Lat, event.Lat)
	assert.Equal(t, shop.Lon, event.Lon)
	assert.False(t, event.OccurredAt.IsZero())

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"action":"updated"`)
}
