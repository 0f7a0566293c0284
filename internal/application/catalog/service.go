package catalog

import (
	"context"
	"fmt"

	"github.com/growthfolio/next-comic-store/internal/domain/product"
	"github.com/growthfolio/next-comic-store/internal/domain/repository"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

const allProductsKey = "products:all"

func productKey(id string) string {
	return "product:" + id
}

// Cache is the subset of the redis cache the catalog needs. A nil Cache
// disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// Service serves the comic catalog cache-aside: reads try the cache first
// and fall back to the repository, repopulating on miss.
type Service struct {
	products repository.ProductRepository
	cache    Cache
	logger   logger.Logger
}

func NewService(products repository.ProductRepository, cache Cache, log logger.Logger) *Service {
	return &Service{products: products, cache: cache, logger: log}
}

func (s *Service) ListProducts(ctx context.Context) ([]*product.Product, error) {
	if s.cache != nil {
		var cached []*product.Product
		if err := s.cache.Get(ctx, allProductsKey, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	s.cacheSet(ctx, allProductsKey, products)
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	if s.cache != nil {
		var cached product.Product
		if err := s.cache.Get(ctx, productKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, productKey(id), p)
	return p, nil
}

// cacheSet repopulates best-effort; a cache failure never fails the read.
func (s *Service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("cache set failed", logger.String("key", key), logger.Error(err))
	}
}
