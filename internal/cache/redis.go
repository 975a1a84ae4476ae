package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/missoes-dashboard-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Chave da lista de missoes no cache
const MissionListKey = "missions:list"

// Client envolve o cliente Redis usado como cache de documentos de missao
// e como barramento de eventos de processamento de recibos.
type Client struct {
	Client *redis.Client
}

// NewClient creates a new Redis client
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// MissionKey monta a chave de cache de uma missao
func MissionKey(slug string) string {
	return fmt.Sprintf("mission:%s", slug)
}

// GetJSON le uma chave e desserializa o JSON no destino. Retorna false em
// cache miss; JSON corrompido tambem conta como miss, nunca como erro.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON serializa o valor e grava com expiracao
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.Client.Set(ctx, key, raw, expiration).Err()
}

// Delete removes keys from Redis
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}

// InvalidateMission derruba o documento da missao e a listagem. Toda escrita
// que toca uma missao precisa passar por aqui; o cache nunca e atualizado
// no lugar.
func (c *Client) InvalidateMission(ctx context.Context, slug string) error {
	return c.Delete(ctx, MissionKey(slug), MissionListKey)
}

// Publish publishes a message to a Redis channel
func (c *Client) Publish(ctx context.Context, channel string, message interface{}) error {
	return c.Client.Publish(ctx, channel, message).Err()
}

// Close closes the Redis client
func (c *Client) Close() error {
	return c.Client.Close()
}
