package repository

import (
	"context"

	"github.com/alibia/backoffice/internal/domain/entity"
)

// UserClientRepository persists storefront accounts with their transient
// OTP state. Update writes the whole row; concurrent OTP issuance is
// last-write-wins by design.
type UserClientRepository interface {
	Create(ctx context.Context, u *entity.UserClient) error
	GetByID(ctx context.Context, id int64) (*entity.UserClient, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserClient, error)
	Update(ctx context.Context, u *entity.UserClient) error
}
