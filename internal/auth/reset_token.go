package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// ResetCodeTTL is how long a password-reset code stays valid
const ResetCodeTTL = 10 * time.Minute

// GenerateResetCode produces a 6-digit numeric one-time code from a secure
// random source. The plaintext is emailed to the user and never persisted.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// HashResetCode returns the hex sha256 of the code. Only this digest is
// stored on the user record.
func HashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
