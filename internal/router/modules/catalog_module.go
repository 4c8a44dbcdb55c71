package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alibia/backoffice/internal/container"
	handlers "github.com/alibia/backoffice/internal/interface/http"
	"github.com/alibia/backoffice/internal/interface/middleware"
	"github.com/alibia/backoffice/pkg/helpers"
)

// CatalogModule registers category, product and product image routes.
// All of them are staff-only.
type CatalogModule struct {
	Categories *handlers.CategoryHandler
	Products   *handlers.ProductHandler
	Images     *handlers.ProductImageHandler
	JWT        *helpers.JWTManager
}

func NewCatalogModule(cat *handlers.CategoryHandler, prod *handlers.ProductHandler, img *handlers.ProductImageHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Categories: cat, Products: prod, Images: img, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	cats := rg.Group("/categories")
	cats.Use(middleware.StaffAuth(m.JWT), limiter)
	{
		cats.GET("/getAllCategories", m.Categories.GetAll)
		cats.GET("/getCategory/:id", m.Categories.Get)
		cats.POST("/create", m.Categories.Create)
		cats.PUT("/update/:id", m.Categories.Update)
		cats.DELETE("/delete/:id", m.Categories.Delete)
	}

	prods := rg.Group("/products")
	prods.Use(middleware.StaffAuth(m.JWT), limiter)
	{
		prods.GET("/getAllProducts", m.Products.GetAll)
		prods.GET("/getProduct/:id", m.Products.Get)
		prods.POST("/create", m.Products.Create)
		prods.PUT("/update/:id", m.Products.Update)
		prods.DELETE("/delete/:id", m.Products.Delete)
		prods.GET("/search", m.Products.Search)

		prods.POST("/:id/images", m.Images.Upload)
		prods.GET("/:id/images", m.Images.List)
		prods.DELETE("/:id/images/:imgId", m.Images.Delete)
	}
}
