package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "changes:"

// Op - вид изменения документа
type Op string

const (
	OpCreate Op = "create"
	OpSet    Op = "set"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// ChangeEvent - уведомление об изменении документа в коллекции
type ChangeEvent struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Op         Op        `json:"op"`
	At         time.Time `json:"at"`
}

// Channel возвращает канал Redis для коллекции
func Channel(collection string) string {
	return channelPrefix + collection
}

// Publisher - интерфейс для публикации изменений
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

// RedisPublisher - реализация Publisher поверх Redis pub/sub
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в канал коллекции
func (p *RedisPublisher) Publish(ctx context.Context, event ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, Channel(event.Collection), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event to Redis: %w", err)
	}
	return nil
}
