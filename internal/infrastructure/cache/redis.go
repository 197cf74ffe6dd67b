package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/picking-api/pkg/config"
)

// ErrCacheMiss la clave no está en cache (o el cache está deshabilitado).
var ErrCacheMiss = errors.New("cache: miss")

// RedisCache cache de lecturas con TTL corto sobre Redis. Con Enabled=false
// todas las lecturas son miss y las escrituras no-op: la app funciona igual,
// solo que cada consulta va a la base de datos.
type RedisCache struct {
	client  *redis.Client
	enabled bool
}

// NewRedisCache conecta al servidor Redis configurado; con Enabled=false
// devuelve un cache apagado sin tocar la red.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	if !cfg.Enabled {
		return &RedisCache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return &RedisCache{client: client, enabled: true}, nil
}

// Get deserializa en value lo guardado bajo key; ErrCacheMiss si no está.
func (c *RedisCache) Get(ctx context.Context, key string, value interface{}) error {
	if !c.enabled {
		return ErrCacheMiss
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// Set serializa value como JSON bajo key con el TTL dado.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// DeletePattern borra todas las claves que matchean el patrón glob (SCAN +
// DEL por lotes, nunca KEYS: el servidor puede estar compartido).
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) error {
	if !c.enabled {
		return nil
	}
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("del %s: %w", pattern, err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", pattern, err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("del %s: %w", pattern, err)
		}
	}
	return nil
}

// Close cierra la conexión con Redis.
func (c *RedisCache) Close() error {
	if !c.enabled || c.client == nil {
		return nil
	}
	return c.client.Close()
}
