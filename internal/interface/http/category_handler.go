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

type CategoryHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CatalogService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalidData", nil)
		return 0, false
	}
	return id, true
}

func (h *CategoryHandler) GetAll(c *gin.Context) {
	cats, err := h.Svc.ListCategories(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list categories failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, cats, "categoriesRetrieved")
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	cat, err := h.Svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Fail(c, http.StatusNotFound, "categoryNotFound", nil)
			return
		}
		h.Logger.WithError(err).Error("get category failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, cat, "categoryRetrieved")
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.Logger.WithError(err).Error("create category failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusCreated, cat, "categoryCreated")
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Fail(c, http.StatusNotFound, "categoryNotFound", nil)
			return
		}
		h.Logger.WithError(err).Error("update category failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, cat, "categoryUpdated")
}

// Delete removes a category; products under it (and their images) go
// with it via the store's cascade.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Fail(c, http.StatusNotFound, "categoryNotFound", nil)
			return
		}
		h.Logger.WithError(err).Error("delete category failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "categoryDeleted")
}
