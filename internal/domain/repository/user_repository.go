package repository

import (
	"context"

	"github.com/alibia/backoffice/internal/domain/entity"
)

// UserRepository persists staff accounts. Lookups by UUID use the public
// handle; GetByID/GetByEmail serve the auth path.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUUID(ctx context.Context, uuid string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	DeleteByUUID(ctx context.Context, uuid string) error
}
