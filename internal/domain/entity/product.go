package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxProductImages caps the gallery size per product. Enforced at the
// application layer, not by the database.
const MaxProductImages = 5

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  int64           `json:"categoryId"`

	// Populated on reads that join the category and gallery.
	CategoryName string         `json:"categoryName,omitempty"`
	Images       []ProductImage `json:"images,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductImage struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
