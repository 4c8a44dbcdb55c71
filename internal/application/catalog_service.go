package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/alibia/backoffice/internal/domain/entity"
	repo "github.com/alibia/backoffice/internal/domain/repository"
	"github.com/alibia/backoffice/pkg/helpers"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrNoImages         = errors.New("no images uploaded")
	ErrTooManyImages    = fmt.Errorf("a product holds at most %d images", entity.MaxProductImages)
	ErrUnsupportedImage = errors.New("only jpeg, png and gif images are accepted")
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
	ErrInvalidPrice     = errors.New("price is not a valid decimal")
)

func parsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	if d.IsNegative() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return d, nil
}

// MaxImageSize bounds a single upload.
const MaxImageSize = 5 << 20 // 5 MiB

// CatalogService covers categories, products and product image galleries.
// Images live in the blob store under opaque generated names; products are
// mirrored into Elasticsearch for the dashboard search box.
type CatalogService struct {
	Categories repo.CategoryRepository
	Products   repo.ProductRepository
	Images     repo.ProductImageRepository

	GCS       *storage.Client
	GCSBucket string

	ES      *elasticsearch.Client
	ESIndex string

	Logger *logrus.Logger
}

func NewCatalogService(
	categories repo.CategoryRepository,
	products repo.ProductRepository,
	images repo.ProductImageRepository,
	gcs *storage.Client, bucket string,
	es *elasticsearch.Client, esIndex string,
	logger *logrus.Logger,
) *CatalogService {
	return &CatalogService{
		Categories: categories,
		Products:   products,
		Images:     images,
		GCS:        gcs,
		GCSBucket:  bucket,
		ES:         es,
		ESIndex:    esIndex,
		Logger:     logger,
	}
}

// --- categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	if name == "" {
		return nil, ErrMissingFields
	}
	c := &entity.Category{Name: name}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, name string) (*entity.Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		c.Name = name
	}
	if err := s.Categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes the category; the database cascades the delete to
// its products and their images.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	err := s.Categories.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

// --- products ---

// ProductInput carries a create or partial-update payload. Nil pointer
// fields were absent from the request, so a present zero (stock sold out,
// description cleared) still applies.
type ProductInput struct {
	Name        string
	Description *string
	Price       string
	Stock       *int
	CategoryID  int64
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*entity.Product, error) {
	if in.Name == "" || in.Price == "" || in.CategoryID == 0 {
		return nil, ErrMissingFields
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	p := &entity.Product{
		Name:       in.Name,
		Price:      price,
		CategoryID: in.CategoryID,
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if err := s.Products.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrInUse) || errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.Products.List(ctx)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*entity.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != "" {
		price, err := parsePrice(in.Price)
		if err != nil {
			return nil, err
		}
		p.Price = price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.CategoryID != 0 {
		p.CategoryID = in.CategoryID
	}
	if err := s.Products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrInUse) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

// DeleteProduct removes the product row (images cascade in the store) and
// then cleans blobs and the search index best-effort.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	for _, img := range p.Images {
		s.removeBlob(ctx, img.ImageURL)
	}
	s.unindexProduct(ctx, id)
	return nil
}

// --- images ---

// ImageUpload describes a single multipart file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

func imageExtAllowed(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

// AddImages validates and stores uploads for a product. The gallery cap
// counts existing rows plus the incoming batch.
func (s *CatalogService) AddImages(ctx context.Context, productID int64, uploads []ImageUpload) ([]*entity.ProductImage, error) {
	if len(uploads) == 0 {
		return nil, ErrNoImages
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	existing, err := s.Images.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if existing+len(uploads) > entity.MaxProductImages {
		return nil, ErrTooManyImages
	}
	for _, up := range uploads {
		if !imageExtAllowed(up.Filename) {
			return nil, ErrUnsupportedImage
		}
		if up.Size > MaxImageSize {
			return nil, ErrImageTooLarge
		}
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("storage not configured")
	}

	out := make([]*entity.ProductImage, 0, len(uploads))
	for _, up := range uploads {
		ext := strings.ToLower(filepath.Ext(up.Filename))
		objectPath := filepath.ToSlash(filepath.Join("products", fmt.Sprintf("%d", productID), uuid.NewString()+ext))
		if _, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, up.ContentType, up.Reader); err != nil {
			return nil, err
		}
		img := &entity.ProductImage{ProductID: productID, ImageURL: objectPath}
		if err := s.Images.Create(ctx, img); err != nil {
			s.removeBlob(ctx, objectPath)
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

func (s *CatalogService) ListImages(ctx context.Context, productID int64) ([]*entity.ProductImage, error) {
	return s.Images.ListByProduct(ctx, productID)
}

func (s *CatalogService) DeleteImage(ctx context.Context, productID, imageID int64) error {
	img, err := s.Images.GetByID(ctx, productID, imageID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	if err := s.Images.Delete(ctx, productID, imageID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	s.removeBlob(ctx, img.ImageURL)
	return nil
}

func (s *CatalogService) removeBlob(ctx context.Context, objectPath string) {
	if s.GCS == nil || s.GCSBucket == "" || objectPath == "" {
		return
	}
	if err := helpers.DeleteObject(ctx, s.GCS, s.GCSBucket, objectPath); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("object", objectPath).Warn("blob delete failed")
	}
}

// --- search index ---

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":            p.ID,
		"name":          p.Name,
		"description":   p.Description,
		"price":         p.Price.String(),
		"stock":         p.Stock,
		"category_id":   p.CategoryID,
		"category_name": p.CategoryName,
		"updated_at":    p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: fmt.Sprintf("%d", p.ID),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *CatalogService) unindexProduct(ctx context.Context, id int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: fmt.Sprintf("%d", id)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchProducts runs a multi_match query over name, description and
// category name.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "category_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
