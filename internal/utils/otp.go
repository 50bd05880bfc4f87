package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpSpace is the number of distinct 6-digit codes (000000..999999).
var otpSpace = big.NewInt(1_000_000)

// GenerateOTP returns a uniformly random 6-digit numeric passcode as a
// zero-padded string. The code is drawn from the OS CSPRNG; modulo bias is
// avoided by using crypto/rand.Int.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", fmt.Errorf("error generating OTP: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
