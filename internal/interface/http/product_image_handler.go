package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alibia/backoffice/internal/application"
	"github.com/alibia/backoffice/pkg/response"
)

// ProductImageHandler manages the image gallery of a product. Uploads are
// multipart with one or more files under the "images" field.
type ProductImageHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductImageHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductImageHandler {
	return &ProductImageHandler{Svc: svc, Logger: logger}
}

func (h *ProductImageHandler) Upload(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
		return
	}

	uploads := make([]application.ImageUpload, 0, len(files))
	opened := make([]interface{ Close() error }, 0, len(files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "invalidData", nil)
			return
		}
		opened = append(opened, src)
		uploads = append(uploads, application.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      src,
		})
	}

	images, err := h.Svc.AddImages(c.Request.Context(), productID, uploads)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrProductNotFound):
			response.Fail(c, http.StatusNotFound, "productNotFound", nil)
		case errors.Is(err, application.ErrTooManyImages):
			response.Fail(c, http.StatusBadRequest, "tooManyImages", nil)
		case errors.Is(err, application.ErrUnsupportedImage):
			response.Fail(c, http.StatusBadRequest, "unsupportedImage", nil)
		case errors.Is(err, application.ErrImageTooLarge):
			response.Fail(c, http.StatusBadRequest, "imageTooLarge", nil)
		case errors.Is(err, application.ErrNoImages):
			response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
		default:
			h.Logger.WithError(err).Error("image upload failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	response.JSON(c, http.StatusCreated, images, "imagesUploaded")
}

func (h *ProductImageHandler) List(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}
	images, err := h.Svc.ListImages(c.Request.Context(), productID)
	if err != nil {
		h.Logger.WithError(err).Error("list images failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, images, "imagesRetrieved")
}

func (h *ProductImageHandler) Delete(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := idParam(c, "imgId")
	if !ok {
		return
	}
	if err := h.Svc.DeleteImage(c.Request.Context(), productID, imageID); err != nil {
		if errors.Is(err, application.ErrImageNotFound) {
			response.Fail(c, http.StatusNotFound, "imageNotFound", nil)
			return
		}
		h.Logger.WithError(err).Error("delete image failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "imageDeleted")
}
