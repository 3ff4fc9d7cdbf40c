package service

import (
	"context"
	"testing"
	"time"

	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/infrastructure/metrics"
	"pharmacy-backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*ProductCache, *miniredis.Miniredis, *metrics.Metrics) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	m := metrics.NewMetrics()
	return NewProductCache(client, time.Minute, testutil.NewLogger(), m), mr, m
}

func sampleProducts() []entity.Product {
	return []entity.Product{
		{ID: uuid.New(), Name: "Ibuprofen 200mg", Price: decimal.RequireFromString("8.99"), Category: entity.CategoryOTC},
		{ID: uuid.New(), Name: "Vitamin C", Price: decimal.RequireFromString("12.50"), Category: entity.CategoryVitamins},
	}
}

func TestProductCache_ListRoundTrip(t *testing.T) {
	cache, _, m := newTestCache(t)
	ctx := context.Background()
	filter := entity.ProductFilter{Category: entity.CategoryOTC, Search: "Ibu"}

	_, gen, ok := cache.GetList(ctx, filter)
	require.False(t, ok)
	assert.Equal(t, int64(0), gen)

	products := sampleProducts()
	cache.SetList(ctx, gen, filter, products)

	cached, _, ok := cache.GetList(ctx, filter)
	require.True(t, ok)
	require.Len(t, cached, 2)
	assert.Equal(t, products[0].ID, cached[0].ID)
	assert.True(t, products[0].Price.Equal(cached[0].Price))

	item, _, ok := cache.GetProduct(ctx, products[1].ID)
	require.True(t, ok)
	assert.Equal(t, "Vitamin C", item.Name)

	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.ProductCacheTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.ProductCacheTotal.WithLabelValues("miss")))
}

func TestProductCache_InvalidateDropsEverything(t *testing.T) {
	cache, mr, _ := newTestCache(t)
	ctx := context.Background()
	products := sampleProducts()

	cache.SetList(ctx, 0, entity.ProductFilter{}, products)
	cache.Invalidate(ctx)

	_, gen, ok := cache.GetList(ctx, entity.ProductFilter{})
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)

	_, _, ok = cache.GetProduct(ctx, products[0].ID)
	assert.False(t, ok)
	assert.Equal(t, "1", mr.GetString(productCacheVersionKey))
}

func TestProductCache_StaleGenerationIsNeverServed(t *testing.T) {
	cache, _, _ := newTestCache(t)
	ctx := context.Background()

	_, gen, _ := cache.GetList(ctx, entity.ProductFilter{})
	cache.Invalidate(ctx)
	cache.SetList(ctx, gen, entity.ProductFilter{}, sampleProducts())

	_, _, ok := cache.GetList(ctx, entity.ProductFilter{})
	assert.False(t, ok)
}

func TestProductCache_EntriesExpire(t *testing.T) {
	cache, mr, _ := newTestCache(t)
	ctx := context.Background()

	cache.SetList(ctx, 0, entity.ProductFilter{}, sampleProducts())
	mr.FastForward(2 * time.Minute)

	_, _, ok := cache.GetList(ctx, entity.ProductFilter{})
	assert.False(t, ok)
}

func TestProductCache_DisabledAndUnavailable(t *testing.T) {
	var disabled *ProductCache
	_, gen, ok := disabled.GetList(context.Background(), entity.ProductFilter{})
	assert.False(t, ok)
	assert.Equal(t, int64(-1), gen)
	assert.NotPanics(t, func() { disabled.Invalidate(context.Background()) })

	cache, mr, _ := newTestCache(t)
	mr.Close()
	_, gen, ok = cache.GetList(context.Background(), entity.ProductFilter{})
	assert.False(t, ok)
	assert.Equal(t, int64(-1), gen)
}
