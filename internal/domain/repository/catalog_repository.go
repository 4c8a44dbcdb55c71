package repository

import (
	"context"

	"github.com/alibia/backoffice/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository persists products. Reads hydrate the category name;
// GetByID and List also hydrate the image gallery.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id int64) error
}

type ProductImageRepository interface {
	Create(ctx context.Context, img *entity.ProductImage) error
	ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductImage, error)
	CountByProduct(ctx context.Context, productID int64) (int, error)
	GetByID(ctx context.Context, productID, imageID int64) (*entity.ProductImage, error)
	Delete(ctx context.Context, productID, imageID int64) error
}
