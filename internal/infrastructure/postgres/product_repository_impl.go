package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alibia/backoffice/internal/domain/entity"
	"github.com/alibia/backoffice/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, stock, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Description, p.Price.String(), p.Stock, p.CategoryID)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return translate(err)
	}
	return r.hydrateCategory(ctx, p)
}

func (r *ProductRepository) hydrateCategory(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `SELECT name FROM categories WHERE id = $1`, p.CategoryID)
	if err := row.Scan(&p.CategoryName); err != nil {
		return translate(err)
	}
	return nil
}

func scanProduct(scan func(dest ...any) error) (*entity.Product, error) {
	p := &entity.Product{}
	var price string
	if err := scan(&p.ID, &p.Name, &p.Description, &price, &p.Stock,
		&p.CategoryID, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	p.Price = d
	return p, nil
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price::text, p.stock,
	       p.category_id, c.name, p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id`

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	row := r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id)
	p, err := scanProduct(row.Scan)
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, []*entity.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, productSelect+` ORDER BY p.id`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	if err := r.attachImages(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachImages hydrates galleries for the given products in one query.
func (r *ProductRepository) attachImages(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Product, len(products))
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, image_url, created_at, updated_at
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	for rows.Next() {
		img := entity.ProductImage{}
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return translate(err)
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return translate(rows.Err())
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category_id = $5, updated_at = $6
		WHERE id = $7
	`, p.Name, p.Description, p.Price.String(), p.Stock, p.CategoryID, p.UpdatedAt, p.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return r.hydrateCategory(ctx, p)
}

// Delete removes the product; its images go with it via ON DELETE CASCADE.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
