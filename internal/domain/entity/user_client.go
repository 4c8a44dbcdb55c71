package entity

import "time"

// Storefront client roles. Intentionally a separate enumeration from the
// staff roles; the two account domains never share a table or a token.
const (
	ClientRoleAdmin    = "admin"
	ClientRoleEmployer = "employer"
	ClientRoleUser     = "user"
)

// UserClient is a self-service storefront account. The OTP pairs are
// transient challenges: at most one live code of each kind exists, a new
// request overwrites the previous one, and consumption clears the pair.
type UserClient struct {
	ID                int64
	Name              string
	Email             string
	Password          string
	VerifyOtp         string
	VerifyOtpExpireAt int64 // epoch millis, 0 when no challenge pending
	IsAccountVerified bool
	ResetOtp          string
	ResetOtpExpireAt  int64 // epoch millis
	Role              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Public returns the response-safe projection of the account.
func (u *UserClient) Public() map[string]any {
	return map[string]any{
		"id":                u.ID,
		"name":              u.Name,
		"email":             u.Email,
		"isAccountVerified": u.IsAccountVerified,
		"role":              u.Role,
	}
}
