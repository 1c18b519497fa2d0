package users

import (
	"testing"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := generateOTP()
		if err != nil {
			t.Fatalf("generateOTP: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, ch := range code {
			if ch < '0' || ch > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
		seen[code] = true
	}
	// 50 draws from a million values colliding every time would mean a
	// broken generator.
	if len(seen) < 2 {
		t.Error("generator returned the same code repeatedly")
	}
}
