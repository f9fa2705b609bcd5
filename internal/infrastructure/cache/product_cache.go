package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/config"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

const (
	barcodeKeyPrefix = "product:barcode:"
	defaultCacheTTL  = 5 * time.Minute
)

// ProductCache caches barcode lookups so the scanner round-trip stays fast
// during rush hour. All errors degrade to a cache miss.
type ProductCache interface {
	GetByBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*entity.Product, error)
	Set(ctx context.Context, product *entity.Product) error
	Invalidate(ctx context.Context, storeID uuid.UUID, barcode string) error
}

// RedisProductCache implements ProductCache using Redis.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache creates a new Redis-backed product cache.
func NewRedisProductCache(cfg *config.RedisConfig) *RedisProductCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisProductCache{client: client, ttl: ttl}
}

func key(storeID uuid.UUID, barcode string) string {
	return barcodeKeyPrefix + storeID.String() + ":" + barcode
}

// GetByBarcode retrieves a cached product. A nil product with nil error is a miss.
func (c *RedisProductCache) GetByBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*entity.Product, error) {
	data, err := c.client.Get(ctx, key(storeID, barcode)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// Redis trouble should never block a sale
		log.Printf("product cache get error: %v", err)
		return nil, nil
	}

	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, nil
	}
	return &product, nil
}

// Set stores a product keyed by its barcode.
func (c *RedisProductCache) Set(ctx context.Context, product *entity.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key(product.StoreID, product.Barcode), data, c.ttl).Err(); err != nil {
		log.Printf("product cache set error: %v", err)
		return err
	}
	return nil
}

// Invalidate removes a cached product after a catalog edit.
func (c *RedisProductCache) Invalidate(ctx context.Context, storeID uuid.UUID, barcode string) error {
	if err := c.client.Del(ctx, key(storeID, barcode)).Err(); err != nil {
		log.Printf("product cache delete error: %v", err)
		return err
	}
	return nil
}

// NoopProductCache is used when Redis is not configured.
type NoopProductCache struct{}

// NewNoopProductCache creates a cache that never hits.
func NewNoopProductCache() *NoopProductCache {
	return &NoopProductCache{}
}

func (NoopProductCache) GetByBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*entity.Product, error) {
	return nil, nil
}

func (NoopProductCache) Set(ctx context.Context, product *entity.Product) error {
	return nil
}

func (NoopProductCache) Invalidate(ctx context.Context, storeID uuid.UUID, barcode string) error {
	return nil
}
