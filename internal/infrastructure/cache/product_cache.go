// Package cache caché de lectura del catálogo en Redis. El stock nunca se cachea:
// los lotes se leen siempre de la base para no vender sobre datos viejos.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "product:"

var _ repository.ProductRepository = (*ProductCache)(nil)

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ProductCache decora un ProductRepository con lectura por ID desde Redis.
// Las escrituras van al repositorio y luego invalidan la clave.
type ProductCache struct {
	next   repository.ProductRepository
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewProductCache construye el decorador.
func NewProductCache(next repository.ProductRepository, client *redis.Client, ttl time.Duration, log *logger.Logger) *ProductCache {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductCache{next: next, client: client, ttl: ttl, log: log}
}

// productEntry forma serializada; entity.Product no lleva tags JSON.
type productEntry struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	SKU         string     `json:"sku"`
	Name        string     `json:"name"`
	UnitMeasure string     `json:"unit_measure"`
	Price       string     `json:"price"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (c *ProductCache) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	raw, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	switch {
	case err == nil:
		if p, decErr := decode(raw); decErr == nil {
			return p, nil
		}
		c.log.Warn().Str("product_id", id).Msg("entrada de caché corrupta; se descarta")
	case !errors.Is(err, redis.Nil):
		// Redis caído no debe tumbar las ventas; se lee de la base
		c.log.Warn().Err(err).Str("product_id", id).Msg("lectura de caché falló")
	}

	p, err := c.next.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	c.store(ctx, p)
	return p, nil
}

func (c *ProductCache) Create(ctx context.Context, p *entity.Product) error {
	return c.next.Create(ctx, p)
}

func (c *ProductCache) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	return c.next.GetByCompanyAndSKU(ctx, companyID, sku)
}

func (c *ProductCache) Update(ctx context.Context, p *entity.Product) error {
	if err := c.next.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID)
	return nil
}

func (c *ProductCache) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	return c.next.ListByCompany(ctx, companyID, limit, offset)
}

func (c *ProductCache) HasHistory(ctx context.Context, id string) (bool, error) {
	return c.next.HasHistory(ctx, id)
}

func (c *ProductCache) Archive(ctx context.Context, id string) error {
	if err := c.next.Archive(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *ProductCache) Delete(ctx context.Context, id string) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *ProductCache) store(ctx context.Context, p *entity.Product) {
	raw, err := json.Marshal(productEntry{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		UnitMeasure: p.UnitMeasure,
		Price:       p.Price.String(),
		ArchivedAt:  p.ArchivedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+p.ID, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", p.ID).Msg("escritura de caché falló")
	}
}

func (c *ProductCache) invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", id).Msg("invalidación de caché falló")
	}
}
