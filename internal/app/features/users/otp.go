// internal/app/features/users/otp.go
package users

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// generateOTP returns a 6-digit verification code from crypto/rand,
// zero-padded so leading zeros survive.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
