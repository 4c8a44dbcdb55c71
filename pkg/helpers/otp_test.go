package helpers

import "testing"

func TestGenOTPCodeFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenOTPCode()
		if err != nil {
			t.Fatalf("GenOTPCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 characters", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
	}
}
