package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for passcode hashing.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// HashPasscode derives a 32-byte argon2id hash of the passcode under the
// given salt.
func HashPasscode(passcode string, salt []byte) []byte {
	return argon2.IDKey([]byte(passcode), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPasscode re-derives the hash for the candidate and compares it to the
// stored hash in constant time.
func VerifyPasscode(candidate string, salt, hash []byte) bool {
	derived := HashPasscode(candidate, salt)
	return subtle.ConstantTimeCompare(derived, hash) == 1
}
