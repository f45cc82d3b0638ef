package common

import (
	"crypto/rand"
)

// GenerateRandByteArray returns n cryptographically random bytes.
// It panics if the system source of randomness is unavailable.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
