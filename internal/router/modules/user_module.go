package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alibia/backoffice/internal/container"
	handlers "github.com/alibia/backoffice/internal/interface/http"
	"github.com/alibia/backoffice/internal/interface/middleware"
	"github.com/alibia/backoffice/pkg/helpers"
)

// UserModule registers the staff account CRUD. Every route sits behind
// bearer authentication; any authenticated staff account may call them.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.StaffAuth(m.JWT))
	users.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		users.GET("/getAllUsers", m.Handler.GetAll)
		users.GET("/getUser/:id", m.Handler.Get)
		users.POST("/create", m.Handler.Create)
		users.PATCH("/update/:id", m.Handler.Update)
		users.DELETE("/delete/:id", m.Handler.Delete)
		users.POST("/uploadProfilePicture/:id", m.Handler.UploadProfilePicture)
	}
}
