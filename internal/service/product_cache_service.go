package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Bumping the version key orphans every cached entry at once; orphans
	// expire on their own TTL.
	productCacheVersionKey = "products:version"
	productCacheKeyPrefix  = "products:v"

	redisCacheTimeout = 2 * time.Second
)

// ProductCache is a read-through cache of catalog reads. A nil redis client
// disables it. Redis failures are logged and treated as misses so the
// catalog keeps working from the database.
type ProductCache struct {
	client  *redis.Client
	ttl     time.Duration
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewProductCache(client *redis.Client, ttl time.Duration, log *logrus.Logger, m *metrics.Metrics) *ProductCache {
	return &ProductCache{
		client:  client,
		ttl:     ttl,
		log:     log,
		metrics: m,
	}
}

func (c *ProductCache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *ProductCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, productCacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func listKey(version int64, filter entity.ProductFilter) string {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	return fmt.Sprintf("%s%d:list:%s:%s", productCacheKeyPrefix, version, filter.Category, search)
}

func itemKey(version int64, id uuid.UUID) string {
	return fmt.Sprintf("%s%d:item:%s", productCacheKeyPrefix, version, id)
}

// get returns the generation it observed alongside the lookup result. A
// negative generation means the cache is unusable for this request.
func (c *ProductCache) get(ctx context.Context, key func(int64) string, dest interface{}) (int64, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	version, err := c.version(ctx)
	if err != nil {
		c.log.Warnf("Failed to read product cache version: %+v", err)
		return -1, false
	}

	raw, err := c.client.Get(ctx, key(version)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read product cache: %+v", err)
		}
		c.metrics.ObserveCache(false)
		return version, false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warnf("Failed to decode cached products: %+v", err)
		c.metrics.ObserveCache(false)
		return version, false
	}

	c.metrics.ObserveCache(true)
	return version, true
}

// GetList returns the cached listing for filter. On a miss the returned
// generation must be handed back to SetList, so a listing read from the
// database before a concurrent Invalidate is never served afterwards.
func (c *ProductCache) GetList(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, int64, bool) {
	if !c.enabled() {
		return nil, -1, false
	}
	var products []entity.Product
	gen, ok := c.get(ctx, func(v int64) string { return listKey(v, filter) }, &products)
	return products, gen, ok
}

func (c *ProductCache) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, int64, bool) {
	if !c.enabled() {
		return nil, -1, false
	}
	var product entity.Product
	gen, ok := c.get(ctx, func(v int64) string { return itemKey(v, id) }, &product)
	if !ok {
		return nil, gen, false
	}
	return &product, gen, true
}

// SetList stores the listing and every product in it in one transaction.
func (c *ProductCache) SetList(ctx context.Context, gen int64, filter entity.ProductFilter, products []entity.Product) {
	if !c.enabled() || gen < 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := json.Marshal(products)
	if err != nil {
		c.log.Warnf("Failed to encode products for cache: %+v", err)
		return
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, listKey(gen, filter), raw, c.ttl)
	for i := range products {
		item, err := json.Marshal(&products[i])
		if err != nil {
			continue
		}
		pipe.Set(ctx, itemKey(gen, products[i].ID), item, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warnf("Failed to write product cache: %+v", err)
	}
}

func (c *ProductCache) SetProduct(ctx context.Context, gen int64, product *entity.Product) {
	if !c.enabled() || gen < 0 || product == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := json.Marshal(product)
	if err != nil {
		c.log.Warnf("Failed to encode product for cache: %+v", err)
		return
	}
	if err := c.client.Set(ctx, itemKey(gen, product.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write product cache: %+v", err)
	}
}

// Invalidate drops every cached listing and product.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := c.client.Incr(ctx, productCacheVersionKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate product cache: %+v", err)
	}
}
