package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alibia/backoffice/internal/application"
	"github.com/alibia/backoffice/pkg/response"
	"github.com/alibia/backoffice/pkg/validation"
)

// AuthHandler exposes the back-office login. The success body keeps the
// dashboard's historical shape: message, token and a trimmed user object.
type AuthHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type staffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req staffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	u, token, _, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrMissingFields):
			response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, "invalidCredentials", nil)
		default:
			h.Logger.WithError(err).Error("staff login failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "loginSuccess",
		"token":   token,
		"user": gin.H{
			"id":    u.UUID,
			"email": u.Email,
			"role":  u.Role,
		},
	})
}
