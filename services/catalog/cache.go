package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix = "product:"
	productListKey   = "products:all"
)

// ProductCache guarda leituras de produto; uma falha de cache nunca falha a requisição.
// Get* retornam (nil, nil) quando a chave não existe.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	SetProduct(ctx context.Context, product *Product) error
	GetProductList(ctx context.Context) ([]*Product, error)
	SetProductList(ctx context.Context, products []*Product) error
	// Invalidate remove os produtos informados e sempre a lista
	Invalidate(ctx context.Context, ids ...string) error
}

// RedisProductCache implementa ProductCache usando Redis
type RedisProductCache struct {
	client  *redis.Client
	ttl     time.Duration
	listTTL time.Duration
}

// maxListTTL limita quanto tempo uma lista gravada após uma invalidação concorrente fica visível
const maxListTTL = 5 * time.Second

func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl, listTTL: min(ttl, maxListTTL)}
}

func (c *RedisProductCache) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	found, err := c.get(ctx, productKeyPrefix+id, &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

func (c *RedisProductCache) SetProduct(ctx context.Context, product *Product) error {
	return c.set(ctx, productKeyPrefix+product.ID, product, c.ttl)
}

func (c *RedisProductCache) GetProductList(ctx context.Context) ([]*Product, error) {
	var products []*Product
	found, err := c.get(ctx, productListKey, &products)
	if err != nil || !found {
		return nil, err
	}
	return products, nil
}

func (c *RedisProductCache) SetProductList(ctx context.Context, products []*Product) error {
	return c.set(ctx, productListKey, products, c.listTTL)
}

func (c *RedisProductCache) Invalidate(ctx context.Context, ids ...string) error {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, productListKey)
	for _, id := range ids {
		keys = append(keys, productKeyPrefix+id)
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisProductCache) get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisProductCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

// noopProductCache é usado quando REDIS_ADDR não está configurado
type noopProductCache struct{}

func (noopProductCache) GetProduct(context.Context, string) (*Product, error) { return nil, nil }
func (noopProductCache) SetProduct(context.Context, *Product) error           { return nil }
func (noopProductCache) GetProductList(context.Context) ([]*Product, error)   { return nil, nil }
func (noopProductCache) SetProductList(context.Context, []*Product) error     { return nil }
func (noopProductCache) Invalidate(context.Context, ...string) error          { return nil }
