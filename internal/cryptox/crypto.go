// Package cryptox hashes and verifies user passwords with Argon2id.
//
// Encoded hashes are self-describing so parameters can change without
// invalidating stored users:
//
//	argon2id$<time>$<memoryKiB>$<threads>$<salt hex>$<key hex>
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize        = 16
	keySize         = 32
	argonTime       = 1
	argonMemory     = 64 * 1024
	argonThreads    = 4
	hashScheme      = "argon2id"
	encodedSections = 6
)

var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using the default Argon2id parameters.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keySize)
}

// GenerateRandByteArray returns n cryptographically random bytes.
func GenerateRandByteArray(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// HashPassword derives a key from password with a fresh random salt and
// returns the encoded form stored in users.password_hash.
func HashPassword(password []byte) (string, error) {
	salt, err := GenerateRandByteArray(saltSize)
	if err != nil {
		return "", fmt.Errorf("salt generation failed: %w", err)
	}
	key := DeriveKey(password, salt)

	return strings.Join([]string{
		hashScheme,
		strconv.Itoa(argonTime),
		strconv.Itoa(argonMemory),
		strconv.Itoa(argonThreads),
		hex.EncodeToString(salt),
		hex.EncodeToString(key),
	}, "$"), nil
}

// VerifyPassword reports whether password matches encoded. The comparison is
// constant-time. A malformed hash yields ErrMalformedHash.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != encodedSections || parts[0] != hashScheme {
		return false, ErrMalformedHash
	}

	t, err1 := strconv.ParseUint(parts[1], 10, 32)
	m, err2 := strconv.ParseUint(parts[2], 10, 32)
	p, err3 := strconv.ParseUint(parts[3], 10, 8)
	salt, err4 := hex.DecodeString(parts[4])
	want, err5 := hex.DecodeString(parts[5])
	if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	got := argon2.IDKey(password, salt, uint32(t), uint32(m), uint8(p), uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// WipeByteArray zeroes b in place; used on password buffers read from the
// terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
