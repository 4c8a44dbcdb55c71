package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alibia/backoffice/internal/application"
	"github.com/alibia/backoffice/pkg/response"
	"github.com/alibia/backoffice/pkg/validation"
)

type ProductHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

// productRequest uses pointers for fields where zero is a meaningful
// value, so an update can set stock to 0 or clear the description.
type productRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       string  `json:"price"`
	Stock       *int    `json:"stock" binding:"omitempty,gte=0"`
	CategoryID  int64   `json:"categoryId"`
}

func (r productRequest) toInput() application.ProductInput {
	return application.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
	}
}

func (h *ProductHandler) failProduct(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, application.ErrProductNotFound):
		response.Fail(c, http.StatusNotFound, "productNotFound", nil)
	case errors.Is(err, application.ErrCategoryNotFound):
		response.Fail(c, http.StatusBadRequest, "invalidData", nil)
	case errors.Is(err, application.ErrInvalidPrice), errors.Is(err, application.ErrMissingFields):
		response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
	default:
		h.Logger.WithError(err).Error(action + " failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
	}
}

func (h *ProductHandler) GetAll(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list products failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, products, "productsRetrieved")
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	p, err := h.Svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.failProduct(c, err, "get product")
		return
	}
	response.JSON(c, http.StatusOK, p, "productRetrieved")
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), req.toInput())
	if err != nil {
		h.failProduct(c, err, "create product")
		return
	}
	response.JSON(c, http.StatusCreated, p, "productCreated")
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateProduct(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.failProduct(c, err, "update product")
		return
	}
	response.JSON(c, http.StatusOK, p, "productUpdated")
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteProduct(c.Request.Context(), id); err != nil {
		h.failProduct(c, err, "delete product")
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "productDeleted")
}

// Search queries the product search index.
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
	hits, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("product search failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, hits, "productsRetrieved")
}
