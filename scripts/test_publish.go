//go:build ignore

// Публикует тестовое событие изменения магазина и ждёт, пока воркер
// сбросит выборки shops:nearby:*.
//
//	go run scripts/test_publish.go -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type shopChangeEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	ShopID     uuid.UUID `json:"shop_id"`
	Action     string    `json:"action"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	OccurredAt time.Time `json:"occurred_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	shopID := flag.String("shop", "11111111-1111-1111-1111-111111111111", "shop UUID")
	action := flag.String("action", "updated", "created | updated | deleted")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// ключ-приманка: воркер должен его удалить
	probeKey := "shops:nearby:probe"
	if err := client.Set(ctx, probeKey, "{}", time.Minute).Err(); err != nil {
		log.Fatalf("Failed to set probe key: %v", err)
	}

	event := shopChangeEvent{
		EventID:    uuid.New(),
		ShopID:     uuid.MustParse(*shopID),
		Action:     *action,
		Lat:        35.659494,
		Lon:        139.700553,
		OccurredAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:shop:changed",
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published: %s (shop %s, %s)\n", id, event.ShopID, event.Action)
	fmt.Println("Waiting for the worker to drop nearby cache...")

	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: probe key is still present, is the worker running?")
			return
		case <-ticker.C:
			n, err := client.Exists(ctx, probeKey).Result()
			if err != nil {
				continue
			}
			if n == 0 {
				fmt.Println("Nearby cache invalidated")
				return
			}
		}
	}
}
