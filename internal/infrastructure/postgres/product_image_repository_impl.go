package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alibia/backoffice/internal/domain/entity"
	"github.com/alibia/backoffice/internal/domain/repository"
)

type ProductImageRepository struct {
	pool *pgxpool.Pool
}

func NewProductImageRepository(pool *pgxpool.Pool) *ProductImageRepository {
	return &ProductImageRepository{pool: pool}
}

func (r *ProductImageRepository) Create(ctx context.Context, img *entity.ProductImage) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO product_images (product_id, image_url)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, img.ProductID, img.ImageURL)
	return translate(row.Scan(&img.ID, &img.CreatedAt, &img.UpdatedAt))
}

func (r *ProductImageRepository) ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductImage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, image_url, created_at, updated_at
		FROM product_images WHERE product_id = $1 ORDER BY id
	`, productID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []*entity.ProductImage
	for rows.Next() {
		img := &entity.ProductImage{}
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, img)
	}
	return out, translate(rows.Err())
}

func (r *ProductImageRepository) CountByProduct(ctx context.Context, productID int64) (int, error) {
	var n int
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM product_images WHERE product_id = $1`, productID)
	if err := row.Scan(&n); err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func (r *ProductImageRepository) GetByID(ctx context.Context, productID, imageID int64) (*entity.ProductImage, error) {
	img := &entity.ProductImage{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, product_id, image_url, created_at, updated_at
		FROM product_images WHERE id = $1 AND product_id = $2
	`, imageID, productID)
	if err := row.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.CreatedAt, &img.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return img, nil
}

func (r *ProductImageRepository) Delete(ctx context.Context, productID, imageID int64) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM product_images WHERE id = $1 AND product_id = $2
	`, imageID, productID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductImageRepository = (*ProductImageRepository)(nil)
