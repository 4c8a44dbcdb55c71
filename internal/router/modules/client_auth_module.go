package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alibia/backoffice/internal/container"
	handlers "github.com/alibia/backoffice/internal/interface/http"
	"github.com/alibia/backoffice/internal/interface/middleware"
	"github.com/alibia/backoffice/pkg/helpers"
)

// ClientAuthModule registers the storefront account routes.
// Public: register, login, logout, send-reset-otp, reset-password
// Cookie-protected: send-verify-otp, verify-account, is-auth, profile data
type ClientAuthModule struct {
	Handler *handlers.ClientAuthHandler
	JWT     *helpers.JWTManager
}

func NewClientAuthModule(h *handlers.ClientAuthHandler, jwt *helpers.JWTManager) *ClientAuthModule {
	return &ClientAuthModule{Handler: h, JWT: jwt}
}

func (m *ClientAuthModule) Register(rg *gin.RouterGroup) {
	credLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	otpLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	ac := rg.Group("/authClient")
	ac.POST("/register", credLimiter, m.Handler.Register)
	ac.POST("/login", credLimiter, m.Handler.Login)
	ac.POST("/logout", m.Handler.Logout)
	ac.POST("/send-reset-otp", otpLimiter, m.Handler.SendResetOTP)
	ac.POST("/reset-password", otpLimiter, m.Handler.ResetPassword)

	protected := ac.Group("/")
	protected.Use(middleware.ClientAuth(m.JWT))
	protected.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByClientID(), nil))
	{
		protected.POST("/send-verify-otp", otpLimiter, m.Handler.SendVerifyOTP)
		protected.POST("/verify-account", m.Handler.VerifyAccount)
		protected.GET("/is-auth", m.Handler.IsAuth)
	}

	uc := rg.Group("/userClient")
	uc.Use(middleware.ClientAuth(m.JWT))
	uc.GET("/data", m.Handler.UserData)
}
