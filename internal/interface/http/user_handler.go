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

// UserHandler serves the staff account CRUD behind the admin dashboard.
// Accounts are addressed by their public uuid in every route.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"required"`
}

type updateUserRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email" binding:"omitempty,email"`
	Password       string  `json:"password" binding:"omitempty,pwd"`
	Role           string  `json:"role"`
	ProfilePicture *string `json:"profilePicture"`
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	response.JSON(c, http.StatusOK, out, "usersRetrieved")
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetByUUID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, "userNotFound", nil)
			return
		}
		h.Logger.WithError(err).Error("get user failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, u.Public(), "userRetrieved")
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	u, creator, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, c.GetString("userID"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Fail(c, http.StatusConflict, "userExists", nil)
		case errors.Is(err, application.ErrInvalidRole):
			response.Fail(c, http.StatusBadRequest, "invalidRole", nil)
		case errors.Is(err, application.ErrMissingFields):
			response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
		default:
			h.Logger.WithError(err).Error("create user failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	data := u.Public()
	if creator != nil {
		data["createdBy"] = creator.Name
	}
	response.JSON(c, http.StatusCreated, data, "userCreated")
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "userNotFound", nil)
		case errors.Is(err, application.ErrEmailTaken):
			response.Fail(c, http.StatusConflict, "userExists", nil)
		case errors.Is(err, application.ErrInvalidRole):
			response.Fail(c, http.StatusBadRequest, "invalidRole", nil)
		default:
			h.Logger.WithError(err).Error("update user failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	response.JSON(c, http.StatusOK, u.Public(), "userUpdated")
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "userNotFound", nil)
		case errors.Is(err, application.ErrUserInUse):
			response.Fail(c, http.StatusConflict, "userInUse", nil)
		default:
			h.Logger.WithError(err).Error("delete user failed")
			response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		}
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "userDeleted")
}

// UploadProfilePicture accepts a multipart form with a single "image"
// field and stores it in the blob store.
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "missingDetails", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalidData", nil)
		return
	}
	defer func() { _ = src.Close() }()

	path, err := h.Svc.UploadProfilePicture(c.Request.Context(), c.Param("id"), src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, "userNotFound", nil)
			return
		}
		h.Logger.WithError(err).Error("profile picture upload failed")
		response.Fail(c, http.StatusInternalServerError, "internalError", nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"profilePicture": path}, "userUpdated")
}
