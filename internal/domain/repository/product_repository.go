package repository

import (
	"context"

	"github.com/growthfolio/next-comic-store/internal/domain/product"
)

type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	FindByID(ctx context.Context, id string) (*product.Product, error)
	FindAll(ctx context.Context) ([]*product.Product, error)
}
