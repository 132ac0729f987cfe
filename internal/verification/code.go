package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeSpace = 1000000

// GenerateCode returns a uniformly random 6-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("can't generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
