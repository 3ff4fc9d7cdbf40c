package usecase

import (
	"context"
	"testing"
	"time"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/repository"
	"pharmacy-backend/internal/service"
	"pharmacy-backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestProductUsecase_SeedOnlyIntoEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := uuid.New()

	seeded, err := env.products.Seed(ctx, actor)
	require.NoError(t, err)
	assert.True(t, seeded.Seeded)
	assert.Equal(t, 12, seeded.Inserted)

	again, err := env.products.Seed(ctx, actor)
	require.NoError(t, err)
	assert.False(t, again.Seeded)
	assert.Equal(t, int64(12), again.Existing)
}

func TestProductUsecase_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.products.Seed(ctx, uuid.New())
	require.NoError(t, err)

	all, err := env.products.List(ctx, "all", "")
	require.NoError(t, err)
	assert.Equal(t, 12, all.Total)

	vitamins, err := env.products.List(ctx, "vitamins", "")
	require.NoError(t, err)
	assert.Equal(t, 2, vitamins.Total)
	for _, p := range vitamins.Products {
		assert.Equal(t, "vitamins", p.Category)
	}

	baby, err := env.products.List(ctx, "", "BABY")
	require.NoError(t, err)
	assert.Equal(t, 2, baby.Total)

	_, err = env.products.List(ctx, "groceries", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductUsecase_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.products.Create(context.Background(), uuid.New(), &dto.CreateProductRequest{
		Name:  "Cough Syrup",
		Price: price("7.49"),
	})
	require.NoError(t, err)
	assert.Equal(t, "otc", created.Category)
	assert.Equal(t, entity.DefaultStockQuantity, created.StockQuantity)
	assert.Equal(t, "7.49", created.Price.StringFixed(2))

	fetched, err := env.products.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cough Syrup", fetched.Name)
}

func TestProductUsecase_CreateRejectsNegativePrice(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.products.Create(context.Background(), uuid.New(), &dto.CreateProductRequest{
		Name:  "Refund",
		Price: price("-1"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductUsecase_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.products.Create(ctx, uuid.New(), &dto.CreateProductRequest{
		Name:        "Cough Syrup",
		Description: "Soothes coughs",
		Price:       price("7.49"),
	})
	require.NoError(t, err)

	stock := 5
	updated, err := env.products.Update(ctx, uuid.New(), created.ID, &dto.UpdateProductRequest{
		Price:         price("6.99"),
		StockQuantity: &stock,
	})
	require.NoError(t, err)
	assert.Equal(t, "6.99", updated.Price.StringFixed(2))
	assert.Equal(t, 5, updated.StockQuantity)
	assert.Equal(t, "Cough Syrup", updated.Name)
	assert.Equal(t, "Soothes coughs", updated.Description)

	_, err = env.products.Update(ctx, uuid.New(), uuid.New(), &dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductUsecase_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.products.Create(ctx, uuid.New(), &dto.CreateProductRequest{Name: "Gauze", Price: price("3.00")})
	require.NoError(t, err)

	require.NoError(t, env.products.Delete(ctx, uuid.New(), created.ID))

	_, err = env.products.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, env.products.Delete(ctx, uuid.New(), created.ID), ErrProductNotFound)
}

func TestProductUsecase_CacheInvalidatedOnMutation(t *testing.T) {
	db := testutil.NewDB(t)
	log := testutil.NewLogger()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache := service.NewProductCache(client, time.Minute, log, nil)
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())
	products := NewProductUsecase(db, log, repository.NewProductRepository(), auditService, cache)
	ctx := context.Background()

	empty, err := products.List(ctx, "", "")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)

	_, err = products.Create(ctx, uuid.New(), &dto.CreateProductRequest{Name: "Gauze", Price: price("3.00")})
	require.NoError(t, err)

	fresh, err := products.List(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Total, "listing cached before the create must not be served")

	// Rows written behind the usecase's back stay invisible until the next mutation.
	require.NoError(t, db.Create(&entity.Product{Name: "Hidden", Price: decimal.NewFromInt(1), Category: entity.CategoryOTC}).Error)
	cached, err := products.List(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Total)
}
