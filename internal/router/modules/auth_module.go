package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alibia/backoffice/internal/container"
	handlers "github.com/alibia/backoffice/internal/interface/http"
	"github.com/alibia/backoffice/internal/interface/middleware"
)

// AuthModule registers the back-office login.
// Public: POST /api/auth/login (rate limited per IP)
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	auth := rg.Group("/auth")
	auth.POST("/login", loginLimiter, m.Handler.Login)
}
