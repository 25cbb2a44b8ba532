package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/cache"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*cache.ProductCache, *miniredis.Miniredis, *memory.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := memory.NewStore()
	return cache.NewProductCache(store.Products(), client, time.Minute, nil), mr, store
}

func seedProduct(t *testing.T, c *cache.ProductCache) *entity.Product {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	p := &entity.Product{
		ID:          "p-1",
		CompanyID:   "c-1",
		SKU:         "SKU-1",
		Name:        "Arroz",
		UnitMeasure: "UND",
		Price:       decimal.RequireFromString("2500.50"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, c.Create(context.Background(), p))
	return p
}

func TestProductCache_GetByIDLlenaLaCache(t *testing.T) {
	c, mr, _ := setup(t)
	p := seedProduct(t, c)

	got, err := c.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, p.Price.Equal(got.Price))
	assert.True(t, mr.Exists("product:"+p.ID))
}

func TestProductCache_SirveDesdeRedis(t *testing.T) {
	c, _, store := setup(t)
	p := seedProduct(t, c)
	ctx := context.Background()

	_, err := c.GetByID(ctx, p.ID)
	require.NoError(t, err)

	// Cambio directo en el repositorio sin pasar por el decorador: la caché aún responde
	changed := *p
	changed.Name = "Arroz premium"
	require.NoError(t, store.Products().Update(ctx, &changed))

	got, err := c.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arroz", got.Name)
}

func TestProductCache_UpdateInvalida(t *testing.T) {
	c, mr, _ := setup(t)
	p := seedProduct(t, c)
	ctx := context.Background()

	_, err := c.GetByID(ctx, p.ID)
	require.NoError(t, err)

	p.Name = "Arroz premium"
	require.NoError(t, c.Update(ctx, p))
	assert.False(t, mr.Exists("product:"+p.ID))

	got, err := c.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arroz premium", got.Name)
}

func TestProductCache_ArchiveInvalida(t *testing.T) {
	c, _, _ := setup(t)
	p := seedProduct(t, c)
	ctx := context.Background()

	_, err := c.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, c.Archive(ctx, p.ID))

	got, err := c.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsArchived())
}

func TestProductCache_RedisCaidoLeeDelRepositorio(t *testing.T) {
	c, mr, _ := setup(t)
	p := seedProduct(t, c)
	mr.Close()

	got, err := c.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
}

func TestProductCache_NoExisteNoSeCachea(t *testing.T) {
	c, mr, _ := setup(t)

	got, err := c.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("product:nope"))
}
