// Package otp generates short numeric one-time passwords for login
// verification.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeLength = 6

// Generate returns a random 6-digit numeric code. Leading zeros are
// preserved, so the result is always exactly six characters.
func Generate() (string, error) {
	max := big.NewInt(1000000)

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

// CacheKey builds the cache key under which a user's pending code is stored.
func CacheKey(userID string) string {
	return "otp:" + userID
}
