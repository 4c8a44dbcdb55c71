package helpers

import (
	"testing"
	"time"
)

func newTestJWT() *JWTManager {
	return NewJWTManager("staff-secret", "client-secret", time.Hour)
}

func TestStaffTokenRoundTrip(t *testing.T) {
	m := newTestJWT()
	token, exp, err := m.GenerateStaffToken("abc-123", "admin")
	if err != nil {
		t.Fatalf("GenerateStaffToken: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry not in the future")
	}
	claims, err := m.ParseStaffToken(token)
	if err != nil {
		t.Fatalf("ParseStaffToken: %v", err)
	}
	if claims.UserID != "abc-123" || claims.Role != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestClientTokenRoundTrip(t *testing.T) {
	m := newTestJWT()
	token, _, err := m.GenerateClientToken(42)
	if err != nil {
		t.Fatalf("GenerateClientToken: %v", err)
	}
	claims, err := m.ParseClientToken(token)
	if err != nil {
		t.Fatalf("ParseClientToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

// A token minted in one domain must never verify in the other.
func TestTokenDomainSeparation(t *testing.T) {
	m := newTestJWT()
	staffToken, _, err := m.GenerateStaffToken("abc-123", "admin")
	if err != nil {
		t.Fatalf("GenerateStaffToken: %v", err)
	}
	clientToken, _, err := m.GenerateClientToken(42)
	if err != nil {
		t.Fatalf("GenerateClientToken: %v", err)
	}
	if _, err := m.ParseClientToken(staffToken); err == nil {
		t.Fatal("staff token accepted by client parser")
	}
	if _, err := m.ParseStaffToken(clientToken); err == nil {
		t.Fatal("client token accepted by staff parser")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("staff-secret", "client-secret", -time.Minute)
	token, _, err := m.GenerateStaffToken("abc-123", "admin")
	if err != nil {
		t.Fatalf("GenerateStaffToken: %v", err)
	}
	if _, err := m.ParseStaffToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}
