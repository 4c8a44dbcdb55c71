package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alibia/backoffice/internal/domain/entity"
	"github.com/alibia/backoffice/internal/domain/repository"
)

type UserClientRepository struct {
	pool *pgxpool.Pool
}

func NewUserClientRepository(pool *pgxpool.Pool) *UserClientRepository {
	return &UserClientRepository{pool: pool}
}

const userClientColumns = `id, name, email, password, verify_otp, verify_otp_expire_at,
	is_account_verified, reset_otp, reset_otp_expire_at, role, created_at, updated_at`

func (r *UserClientRepository) Create(ctx context.Context, u *entity.UserClient) error {
	if u.Role == "" {
		u.Role = entity.ClientRoleUser
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_clients (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.Role)
	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserClientRepository) scanOne(ctx context.Context, query string, arg any) (*entity.UserClient, error) {
	u := &entity.UserClient{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password,
		&u.VerifyOtp, &u.VerifyOtpExpireAt, &u.IsAccountVerified,
		&u.ResetOtp, &u.ResetOtpExpireAt, &u.Role,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserClientRepository) GetByID(ctx context.Context, id int64) (*entity.UserClient, error) {
	return r.scanOne(ctx, `SELECT `+userClientColumns+` FROM user_clients WHERE id = $1`, id)
}

func (r *UserClientRepository) GetByEmail(ctx context.Context, email string) (*entity.UserClient, error) {
	return r.scanOne(ctx, `SELECT `+userClientColumns+` FROM user_clients WHERE email = $1`, email)
}

// Update writes the full row, including OTP state. Two concurrent OTP
// issuances therefore resolve last-write-wins on the stored pair.
func (r *UserClientRepository) Update(ctx context.Context, u *entity.UserClient) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE user_clients
		SET name = $1, email = $2, password = $3,
		    verify_otp = $4, verify_otp_expire_at = $5, is_account_verified = $6,
		    reset_otp = $7, reset_otp_expire_at = $8, role = $9, updated_at = $10
		WHERE id = $11
	`, u.Name, u.Email, u.Password,
		u.VerifyOtp, u.VerifyOtpExpireAt, u.IsAccountVerified,
		u.ResetOtp, u.ResetOtpExpireAt, u.Role, u.UpdatedAt, u.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserClientRepository = (*UserClientRepository)(nil)
