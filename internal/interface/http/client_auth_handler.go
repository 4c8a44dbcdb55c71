package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alibia/backoffice/internal/application"
	"github.com/alibia/backoffice/internal/interface/middleware"
	"github.com/alibia/backoffice/pkg/helpers"
	"github.com/alibia/backoffice/pkg/response"
	"github.com/alibia/backoffice/pkg/validation"
)

// ClientAuthHandler serves the storefront credential endpoints. Sessions
// ride an httpOnly cookie set on register/login and cleared on logout.
type ClientAuthHandler struct {
	Svc     *application.ClientAuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewClientAuthHandler(svc *application.ClientAuthService, cookies *helpers.CookieManager, logger *logrus.Logger) *ClientAuthHandler {
	return &ClientAuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type clientLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type verifyAccountRequest struct {
	OTP string `json:"otp" binding:"required,otp"`
}

type sendResetOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,otp"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

func (h *ClientAuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Fail(c, http.StatusConflict, "userExists", nil)
		case errors.Is(err, application.ErrMissingFields):
			response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
		default:
			h.Logger.WithError(err).Error("client registration failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	h.Cookies.SetSession(c, token, exp)
	response.JSON(c, http.StatusCreated, u.Public(), "registrationSuccess")
}

func (h *ClientAuthHandler) Login(c *gin.Context) {
	var req clientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrMissingFields):
			response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, "invalidCredentials", nil)
		default:
			h.Logger.WithError(err).Error("client login failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	h.Cookies.SetSession(c, token, exp)
	response.JSON(c, http.StatusOK, u.Public(), "loginSuccess")
}

// Logout clears the session cookie. Safe to call without a session.
func (h *ClientAuthHandler) Logout(c *gin.Context) {
	h.Cookies.ClearSession(c)
	response.JSON[any](c, http.StatusOK, nil, "logoutSuccess")
}

func (h *ClientAuthHandler) SendVerifyOTP(c *gin.Context) {
	id, ok := middleware.ClientID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "required", nil)
		return
	}
	email, err := h.Svc.SendVerifyOTP(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyVerified):
			response.Fail(c, http.StatusBadRequest, "accountAlreadyVerified", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "userNotFound", nil)
		case errors.Is(err, application.ErrMailDelivery):
			response.Fail(c, http.StatusInternalServerError, "otpSendError", nil)
		default:
			h.Logger.WithError(err).Error("send verify otp failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"email": email}, "otpSent")
}

func (h *ClientAuthHandler) VerifyAccount(c *gin.Context) {
	id, ok := middleware.ClientID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "required", nil)
		return
	}
	var req verifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyAccount(c.Request.Context(), id, req.OTP); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidOTP):
			response.Fail(c, http.StatusBadRequest, "invalidOtp", nil)
		case errors.Is(err, application.ErrOTPExpired):
			response.Fail(c, http.StatusBadRequest, "otpExpired", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "userNotFound", nil)
		default:
			h.Logger.WithError(err).Error("verify account failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "accountVerified")
}

// IsAuth reports whether the cookie session is valid. Reaching this
// handler already proves it; the body confirms the account still exists.
func (h *ClientAuthHandler) IsAuth(c *gin.Context) {
	id, ok := middleware.ClientID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "required", nil)
		return
	}
	if _, err := h.Svc.GetProfile(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Fail(c, http.StatusUnauthorized, "required", nil)
			return
		}
		h.Logger.WithError(err).Error("session check failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"authenticated": true}, "authenticated")
}

// SendResetOTP issues a reset code for the given email. Unknown emails
// answer 404; the reset flow historically confirms registration status.
func (h *ClientAuthHandler) SendResetOTP(c *gin.Context) {
	var req sendResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SendResetOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "userNotFound", nil)
		case errors.Is(err, application.ErrMailDelivery):
			response.Fail(c, http.StatusInternalServerError, "otpSendError", nil)
		default:
			h.Logger.WithError(err).Error("send reset otp failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "otpSent")
}

func (h *ClientAuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "userNotFound", nil)
		case errors.Is(err, application.ErrInvalidOTP):
			response.Fail(c, http.StatusBadRequest, "invalidOtp", nil)
		case errors.Is(err, application.ErrOTPExpired):
			response.Fail(c, http.StatusBadRequest, "otpExpired", nil)
		default:
			h.Logger.WithError(err).Error("reset password failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "passwordResetSuccess")
}

// UserData returns the sanitized profile of the authenticated client.
func (h *ClientAuthHandler) UserData(c *gin.Context) {
	id, ok := middleware.ClientID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "required", nil)
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, "userNotFound", nil)
			return
		}
		h.Logger.WithError(err).Error("load profile failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, u.Public(), "userData")
}
