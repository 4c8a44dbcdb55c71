package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alibia/backoffice/internal/domain/entity"
	repo "github.com/alibia/backoffice/internal/domain/repository"
	"github.com/alibia/backoffice/pkg/helpers"
)

// UserService manages staff accounts: back-office login and the user CRUD
// behind the admin dashboard. Accounts are addressed by their public uuid.
type UserService struct {
	Repo      repo.UserRepository
	JWT       *helpers.JWTManager
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, gcs *storage.Client, bucket string, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, GCS: gcs, GCSBucket: bucket, Logger: logger}
}

// Login validates staff credentials and mints a bearer token embedding the
// account id and role. Unknown email and wrong password share one generic
// rejection.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, ErrMissingFields
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateStaffToken(u.ID, u.Role)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate staff token failed")
		}
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Create adds a staff account. createdByID records which authenticated
// account performed the creation (audit trail only). Returns the new
// account and the creator, when known.
func (s *UserService) Create(ctx context.Context, in CreateUserInput, createdByID string) (*entity.User, *entity.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, nil, ErrMissingFields
	}
	if !entity.ValidStaffRole(in.Role) {
		return nil, nil, ErrInvalidRole
	}
	if existing, err := s.Repo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}
	u := &entity.User{
		UUID:     uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
	}
	if createdByID != "" {
		u.CreatedBy = &createdByID
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	var creator *entity.User
	if createdByID != "" {
		creator, _ = s.Repo.GetByID(ctx, createdByID)
	}
	return u, creator, nil
}

type UpdateUserInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	ProfilePicture *string
}

// Update applies a partial update to the account addressed by public uuid.
// Empty fields keep their stored value; a provided password is re-hashed.
func (s *UserService) Update(ctx context.Context, publicUUID string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Repo.GetByUUID(ctx, publicUUID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Role != "" {
		if !entity.ValidStaffRole(in.Role) {
			return nil, ErrInvalidRole
		}
		u.Role = in.Role
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if in.ProfilePicture != nil {
		u.ProfilePicture = in.ProfilePicture
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Delete hard-deletes the account. Referential constraints from other rows
// surface as ErrUserInUse and reject the delete.
func (s *UserService) Delete(ctx context.Context, publicUUID string) error {
	if _, err := s.Repo.GetByUUID(ctx, publicUUID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	err := s.Repo.DeleteByUUID(ctx, publicUUID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repo.ErrInUse):
		return ErrUserInUse
	}
	return err
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) GetByUUID(ctx context.Context, publicUUID string) (*entity.User, error) {
	u, err := s.Repo.GetByUUID(ctx, publicUUID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UploadProfilePicture stores the picture in the blob store under an
// opaque generated name and records it on the account.
func (s *UserService) UploadProfilePicture(ctx context.Context, publicUUID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByUUID(ctx, publicUUID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profiles", u.UUID, uuid.NewString()+ext))
	if _, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r); err != nil {
		return "", err
	}
	u.ProfilePicture = &objectPath
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	return objectPath, nil
}
