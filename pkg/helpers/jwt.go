package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager signs and verifies the identity assertions of the two account
// domains. Staff tokens carry the account id and role and are replayed as
// Authorization bearer headers; client tokens carry only the account id and
// live in an httpOnly cookie. Each domain has its own secret, so a token
// minted for one domain never verifies in the other.
type JWTManager struct {
	StaffSecret  []byte
	ClientSecret []byte
	TTL          time.Duration
}

func NewJWTManager(staffSecret, clientSecret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		StaffSecret:  []byte(staffSecret),
		ClientSecret: []byte(clientSecret),
		TTL:          ttl,
	}
}

// StaffClaims are embedded in staff (back-office) tokens.
type StaffClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ClientClaims are embedded in storefront client tokens.
type ClientClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateStaffToken(userID, role string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &StaffClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.StaffSecret)
	return s, exp, err
}

func (m *JWTManager) GenerateClientToken(userID int64) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &ClientClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.ClientSecret)
	return s, exp, err
}

func (m *JWTManager) ParseStaffToken(tokenStr string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	if err := parseInto(tokenStr, claims, m.StaffSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *JWTManager) ParseClientToken(tokenStr string) (*ClientClaims, error) {
	claims := &ClientClaims{}
	if err := parseInto(tokenStr, claims, m.ClientSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseInto(tokenStr string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return err
	}
	if !tkn.Valid {
		return errors.New("invalid token")
	}
	return nil
}
